package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockMailer struct {
	WasCalled bool
	To        string
	Title     string
}

func (m *MockMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	m.WasCalled = true
	m.To = toEmail
	m.Title = listingTitle
	return nil
}

func TestSendListingCreatedEmail_Mock(t *testing.T) {
	mock := &MockMailer{}
	err := mock.SendListingCreatedEmail("jane@example.com", "Flat A")

	assert.NoError(t, err)
	assert.True(t, mock.WasCalled)
	assert.Equal(t, "jane@example.com", mock.To)
	assert.Equal(t, "Flat A", mock.Title)
}

func TestMockMailerSatisfiesInterface(t *testing.T) {
	var _ Mailer = (*MockMailer)(nil)
	var _ Mailer = (*SMTPMailer)(nil)
}
