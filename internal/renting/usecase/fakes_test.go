package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/renthome/renter-service/internal/renting/domain"
)

// fakeListingRepo is a map-backed ListingRepository with injectable failures.
type fakeListingRepo struct {
	mu        sync.Mutex
	seq       int
	listings  map[string]*domain.Listing
	createErr error
	deleteErr error
	calls     []string
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*domain.Listing)}
}

func (f *fakeListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Create")
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	listing.ID = fmt.Sprintf("listing-%d", f.seq)
	cp := *listing
	f.listings[listing.ID] = &cp
	return nil
}

func (f *fakeListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "FindByID")
	listing, ok := f.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	cp := *listing
	return &cp, nil
}

func (f *fakeListingRepo) FindAll(_ context.Context) ([]*domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*domain.Listing, 0, len(f.listings))
	for _, l := range f.listings {
		cp := *l
		all = append(all, &cp)
	}
	return all, nil
}

func (f *fakeListingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(f.listings, id)
	return nil
}

// fakeRenterRepo is a map-backed RenterRepository with injectable failures.
type fakeRenterRepo struct {
	mu        sync.Mutex
	seq       int
	renters   map[string]*domain.Renter
	addRefErr error
	removeErr error
	calls     []string
}

func newFakeRenterRepo() *fakeRenterRepo {
	return &fakeRenterRepo{renters: make(map[string]*domain.Renter)}
}

func (f *fakeRenterRepo) add(renter *domain.Renter) *domain.Renter {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if renter.ID == "" {
		renter.ID = fmt.Sprintf("renter-%d", f.seq)
	}
	f.renters[renter.ID] = renter
	return renter
}

func (f *fakeRenterRepo) Create(_ context.Context, renter *domain.Renter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "Create")
	for _, existing := range f.renters {
		if existing.Email == renter.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.seq++
	renter.ID = fmt.Sprintf("renter-%d", f.seq)
	cp := *renter
	f.renters[renter.ID] = &cp
	return nil
}

func (f *fakeRenterRepo) FindByID(_ context.Context, id string) (*domain.Renter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "FindByID")
	renter, ok := f.renters[id]
	if !ok {
		return nil, domain.ErrRenterNotFound
	}
	cp := *renter
	cp.ListingIDs = append([]string(nil), renter.ListingIDs...)
	return &cp, nil
}

func (f *fakeRenterRepo) FindByEmail(_ context.Context, email string) (*domain.Renter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, renter := range f.renters {
		if renter.Email == email {
			cp := *renter
			return &cp, nil
		}
	}
	return nil, domain.ErrRenterNotFound
}

func (f *fakeRenterRepo) FindAll(_ context.Context) ([]*domain.Renter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*domain.Renter, 0, len(f.renters))
	for _, r := range f.renters {
		cp := *r
		cp.ListingIDs = append([]string(nil), r.ListingIDs...)
		all = append(all, &cp)
	}
	return all, nil
}

func (f *fakeRenterRepo) AddListingRef(_ context.Context, renterID, listingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "AddListingRef")
	if f.addRefErr != nil {
		return f.addRefErr
	}
	renter, ok := f.renters[renterID]
	if !ok {
		return domain.ErrRenterNotFound
	}
	if !renter.OwnsListing(listingID) {
		renter.ListingIDs = append(renter.ListingIDs, listingID)
	}
	return nil
}

func (f *fakeRenterRepo) RemoveListingRef(_ context.Context, renterID, listingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "RemoveListingRef")
	if f.removeErr != nil {
		return f.removeErr
	}
	renter, ok := f.renters[renterID]
	if !ok {
		return nil
	}
	kept := renter.ListingIDs[:0]
	for _, id := range renter.ListingIDs {
		if id != listingID {
			kept = append(kept, id)
		}
	}
	renter.ListingIDs = kept
	return nil
}
