package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/renting/domain"
)

// RetrievalUsecase produces client-ready listing payloads. Reads are
// tolerant: an unresolved owner is masked as null and a dangling listing
// reference is dropped, both logged so they remain visible to operators.
type RetrievalUsecase struct {
	listings domain.ListingRepository
	renters  domain.RenterRepository
	logger   *zap.Logger
}

func NewRetrievalUsecase(listings domain.ListingRepository, renters domain.RenterRepository, logger *zap.Logger) *RetrievalUsecase {
	return &RetrievalUsecase{
		listings: listings,
		renters:  renters,
		logger:   logger.Named("RetrievalUsecase"),
	}
}

// ListAll returns every listing with encoded images and the owner's public
// profile joined in. A listing whose owner lookup fails is surfaced as
// owner-unresolved (null renter), never an error.
func (uc *RetrievalUsecase) ListAll(ctx context.Context) ([]ListingView, error) {
	listings, err := uc.listings.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*domain.Profile)
	views := make([]ListingView, 0, len(listings))
	for _, l := range listings {
		owner, ok := profiles[l.RenterID]
		if !ok {
			owner = uc.OwnerProfile(ctx, l.ID, l.RenterID)
			profiles[l.RenterID] = owner
		}
		views = append(views, ToListingView(l, owner))
	}
	return views, nil
}

// OwnerProfile resolves a listing owner's public profile, or nil when the
// owner cannot be resolved. The failure is logged, never propagated.
func (uc *RetrievalUsecase) OwnerProfile(ctx context.Context, listingID, renterID string) *domain.Profile {
	renter, err := uc.renters.FindByID(ctx, renterID)
	if err != nil {
		if errors.Is(err, domain.ErrRenterNotFound) {
			uc.logger.Warn("owner unresolved for listing",
				zap.String("listingID", listingID), zap.String("renterID", renterID))
		} else {
			uc.logger.Error("owner lookup failed for listing",
				zap.String("listingID", listingID), zap.String("renterID", renterID), zap.Error(err))
		}
		return nil
	}
	profile := renter.Profile()
	return &profile
}

// OwnerView returns a renter's public profile with its owned listings
// resolved and encoded. A reference that no longer resolves to a listing is
// dropped from the result, not an error for the whole response.
func (uc *RetrievalUsecase) OwnerView(ctx context.Context, renterID string) (*RenterView, error) {
	renter, err := uc.renters.FindByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	return uc.buildRenterView(ctx, renter), nil
}

// ListRenters returns every renter with resolved listings.
func (uc *RetrievalUsecase) ListRenters(ctx context.Context) ([]RenterView, error) {
	renters, err := uc.renters.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RenterView, 0, len(renters))
	for _, renter := range renters {
		views = append(views, *uc.buildRenterView(ctx, renter))
	}
	return views, nil
}

func (uc *RetrievalUsecase) buildRenterView(ctx context.Context, renter *domain.Renter) *RenterView {
	view := &RenterView{
		Profile:  renter.Profile(),
		Listings: make([]ListingView, 0, len(renter.ListingIDs)),
	}
	for _, id := range renter.ListingIDs {
		listing, err := uc.listings.FindByID(ctx, id)
		if err != nil {
			// Tolerant read: a dangling reference is dropped, not fatal.
			// The log level distinguishes a known-dangling id from a
			// storage failure.
			if errors.Is(err, domain.ErrListingNotFound) {
				uc.logger.Warn("dropping dangling listing reference",
					zap.String("renterID", renter.ID), zap.String("listingID", id))
			} else {
				uc.logger.Error("dropping listing reference after lookup failure",
					zap.String("renterID", renter.ID), zap.String("listingID", id), zap.Error(err))
			}
			continue
		}
		view.Listings = append(view.Listings, ToListingView(listing, nil))
	}
	return view
}
