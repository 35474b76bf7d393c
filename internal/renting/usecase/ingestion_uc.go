package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/renting/domain"
	"github.com/renthome/renter-service/internal/renting/media"
)

// Submission carries the text fields of a listing submission. All fields are
// required.
type Submission struct {
	Title     string
	Name      string
	Mobile    string
	Street    string
	Town      string
	District  string
	Pincode   string
	Pluscode  string
	RentPrice string
}

func (s Submission) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", s.Title},
		{"name", s.Name},
		{"mobile", s.Mobile},
		{"street", s.Street},
		{"town", s.Town},
		{"district", s.District},
		{"pincode", s.Pincode},
		{"pluscode", s.Pluscode},
		{"rentprice", s.RentPrice},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// IngestionUsecase validates a submission and creates a listing linked to its
// owning renter. The create path is a fixed two-step sequence: persist the
// listing first, then append the reference on the renter. A failure between
// the steps leaves an orphaned listing (surfaced as PartialFailure), never a
// dangling renter reference.
type IngestionUsecase struct {
	listings domain.ListingRepository
	renters  domain.RenterRepository
	logger   *zap.Logger
}

func NewIngestionUsecase(listings domain.ListingRepository, renters domain.RenterRepository, logger *zap.Logger) *IngestionUsecase {
	return &IngestionUsecase{
		listings: listings,
		renters:  renters,
		logger:   logger.Named("IngestionUsecase"),
	}
}

// CreateListing runs the full ingestion sequence for an authenticated renter.
// Validation and media decoding happen before any persistence side effect.
func (uc *IngestionUsecase) CreateListing(ctx context.Context, renterID string, sub Submission, files []media.File) (*domain.Listing, error) {
	if missing := sub.missingFields(); len(missing) > 0 {
		return nil, &domain.ValidationError{Missing: missing}
	}

	images, err := media.DecodeAll(files)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", domain.ErrInvalidMedia)
	}

	renter, err := uc.renters.FindByID(ctx, renterID)
	if err != nil {
		if errors.Is(err, domain.ErrRenterNotFound) {
			return nil, domain.ErrRenterNotFound
		}
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	listing := &domain.Listing{
		Title:     sub.Title,
		Name:      sub.Name,
		Mobile:    sub.Mobile,
		Street:    sub.Street,
		Town:      sub.Town,
		District:  sub.District,
		Pincode:   sub.Pincode,
		Pluscode:  sub.Pluscode,
		RentPrice: sub.RentPrice,
		Images:    images,
		RenterID:  renter.ID,
	}

	if err := uc.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	if err := uc.renters.AddListingRef(ctx, renter.ID, listing.ID); err != nil {
		// The listing is durable but unlinked. Do not roll it back; report
		// both ids so the orphan can be reconciled.
		uc.logger.Error("listing persisted but owner link failed",
			zap.String("listingID", listing.ID),
			zap.String("renterID", renter.ID),
			zap.Error(err))
		return listing, &domain.PartialFailure{ListingID: listing.ID, RenterID: renter.ID, Err: err}
	}

	uc.logger.Info("listing ingested",
		zap.String("listingID", listing.ID),
		zap.String("renterID", renter.ID),
		zap.Int("images", len(images)))
	return listing, nil
}

// DeleteListing removes a listing and its owner's back-reference. The
// reference is removed first so a failure never leaves the renter pointing at
// a listing that no longer exists; a missing owner does not block deletion.
func (uc *IngestionUsecase) DeleteListing(ctx context.Context, id string) (*domain.Listing, error) {
	listing, err := uc.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.renters.RemoveListingRef(ctx, listing.RenterID, listing.ID); err != nil {
		// A storage failure here aborts the delete: removing the record
		// anyway would leave a dangling reference on the renter.
		return nil, fmt.Errorf("unlink listing %s from renter %s: %w", listing.ID, listing.RenterID, err)
	}

	if err := uc.listings.Delete(ctx, id); err != nil {
		return nil, err
	}

	uc.logger.Info("listing deleted",
		zap.String("listingID", listing.ID),
		zap.String("renterID", listing.RenterID))
	return listing, nil
}
