package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrRenterNotFound     = errors.New("renter not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidMedia       = errors.New("invalid media attachment")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports every missing required field of a submission in one
// error, so the client can correct the whole form at once.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// PartialFailure means a Listing was durably persisted but linking it to its
// owner failed. The listing is orphaned, not rolled back; both ids are carried
// so an operator can reconcile.
type PartialFailure struct {
	ListingID string
	RenterID  string
	Err       error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("listing %s persisted but not linked to renter %s: %v", e.ListingID, e.RenterID, e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }
