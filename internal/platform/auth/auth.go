// Package auth issues and verifies the opaque bearer credentials renters use,
// and owns password hashing. The signing secret is a constructor parameter so
// tests can run with a fixed secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/renthome/renter-service/internal/renting/domain"
)

// DefaultTokenTTL matches the login token lifetime: one hour from issuance.
const DefaultTokenTTL = time.Hour

// Claims is the JWT payload carried by a renter credential.
type Claims struct {
	RenterID string `json:"renterId"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a bearer credential embedding the renter id and an expiry.
func (s *Service) IssueToken(renterID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RenterID: renterID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential and returns the embedded renter id.
// Any failure (bad signature, expiry, wrong algorithm, missing claim) is
// reported as ErrUnauthorized.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: token has expired", domain.ErrUnauthorized)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.RenterID == "" {
		return "", fmt.Errorf("%w: renter id missing from token claims", domain.ErrUnauthorized)
	}
	return claims.RenterID, nil
}

// HashPassword hashes a plaintext credential for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword compares a stored hash against a login attempt.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
