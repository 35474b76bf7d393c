package domain

import "time"

// Image is a binary attachment embedded in a Listing. It has no identity of
// its own and lives and dies with its parent Listing.
type Image struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Listing is a rental property advertisement. Images are owned value objects;
// RenterID is a required back-reference to the owning Renter.
type Listing struct {
	ID        string
	Title     string
	Name      string
	Mobile    string
	Street    string
	Town      string
	District  string
	Pincode   string
	Pluscode  string
	RentPrice string
	Images    []Image
	RenterID  string
	CommitIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Renter is the account entity that owns zero or more Listings. Password
// holds the bcrypt hash, never the plaintext.
type Renter struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Mobile     string
	Password   string
	ListingIDs []string
	CommitIDs  []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Profile is the public view of a Renter, safe to embed in responses.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
}

func (r *Renter) Profile() Profile {
	return Profile{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Mobile:    r.Mobile,
	}
}

// OwnsListing reports whether the renter's reference set contains id.
func (r *Renter) OwnsListing(id string) bool {
	for _, lid := range r.ListingIDs {
		if lid == id {
			return true
		}
	}
	return false
}
