package usecase

import (
	"time"

	"github.com/renthome/renter-service/internal/renting/domain"
	"github.com/renthome/renter-service/internal/renting/media"
)

// ListingView is the client-ready shape of a listing: images encoded for
// transport, owner resolved to a public profile. Renter is null when the
// owner reference cannot be resolved (owner-unresolved), never an error.
type ListingView struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Name      string               `json:"name"`
	Mobile    string               `json:"mobile"`
	Street    string               `json:"street"`
	Town      string               `json:"town"`
	District  string               `json:"district"`
	Pincode   string               `json:"pincode"`
	Pluscode  string               `json:"pluscode"`
	RentPrice string               `json:"rentprice"`
	Images    []media.EncodedImage `json:"images"`
	Renter    *domain.Profile      `json:"renter"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// RenterView is a renter's public profile joined with its resolved listings.
type RenterView struct {
	domain.Profile
	Listings []ListingView `json:"homes"`
}

// ToListingView renders one listing with an optional resolved owner.
func ToListingView(l *domain.Listing, owner *domain.Profile) ListingView {
	return ListingView{
		ID:        l.ID,
		Title:     l.Title,
		Name:      l.Name,
		Mobile:    l.Mobile,
		Street:    l.Street,
		Town:      l.Town,
		District:  l.District,
		Pincode:   l.Pincode,
		Pluscode:  l.Pluscode,
		RentPrice: l.RentPrice,
		Images:    media.EncodeAll(l.Images),
		Renter:    owner,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
