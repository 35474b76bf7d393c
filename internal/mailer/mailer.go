package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends listing lifecycle notifications to the owner.
type Mailer interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}

type SMTPMailer struct {
	host     string
	port     int
	email    string
	password string
}

func NewSMTPMailer(host string, port int, email, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, email: email, password: password}
}

func (m *SMTPMailer) SendListingCreatedEmail(toEmail, listingTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.email)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", "Your listing '"+listingTitle+"' has been created successfully.")

	d := gomail.NewDialer(m.host, m.port, m.email, m.password)
	return d.DialAndSend(msg)
}
