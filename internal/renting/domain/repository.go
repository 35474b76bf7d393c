package domain

import "context"

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context) ([]*Listing, error)
	Delete(ctx context.Context, id string) error
}

type RenterRepository interface {
	Create(ctx context.Context, renter *Renter) error
	FindByID(ctx context.Context, id string) (*Renter, error)
	FindByEmail(ctx context.Context, email string) (*Renter, error)
	FindAll(ctx context.Context) ([]*Renter, error)

	// AddListingRef appends listingID to the renter's owned-listing set.
	// Idempotent; returns ErrRenterNotFound if the renter is absent.
	AddListingRef(ctx context.Context, renterID, listingID string) error

	// RemoveListingRef removes listingID from the renter's owned-listing set.
	// Idempotent; a missing renter or reference is not an error.
	RemoveListingRef(ctx context.Context, renterID, listingID string) error
}
