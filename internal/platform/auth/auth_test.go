package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthome/renter-service/internal/renting/domain"
)

const testSecret = "test-secret"

func TestIssueAndVerifyToken(t *testing.T) {
	svc := NewService(testSecret, time.Hour)

	token, err := svc.IssueToken("renter-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	renterID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "renter-123", renterID)
}

func TestVerifyExpiredToken(t *testing.T) {
	// NewService rejects non-positive TTLs, so build the expired issuer
	// directly.
	svc := &Service{secret: []byte(testSecret), ttl: -time.Minute}

	token, err := svc.IssueToken("renter-123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewService(testSecret, time.Hour).IssueToken("renter-123")
	require.NoError(t, err)

	_, err = NewService("other-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := NewService(testSecret, time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2secret", hashed)

	assert.True(t, CheckPassword(hashed, "hunter2secret"))
	assert.False(t, CheckPassword(hashed, "wrong-password"))
}
