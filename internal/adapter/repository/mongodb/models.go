package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/renthome/renter-service/internal/renting/domain"
)

// imageDocument is an embedded subdocument; it carries no _id of its own.
type imageDocument struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
	Filename    string `bson:"filename"`
}

type listingDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Title     string               `bson:"title"`
	Name      string               `bson:"name"`
	Mobile    string               `bson:"mobile"`
	Street    string               `bson:"street"`
	Town      string               `bson:"town"`
	District  string               `bson:"district"`
	Pincode   string               `bson:"pincode"`
	Pluscode  string               `bson:"pluscode"`
	RentPrice string               `bson:"rentprice"`
	Images    []imageDocument      `bson:"images"`
	Renter    primitive.ObjectID   `bson:"renter"`
	Commits   []primitive.ObjectID `bson:"commits,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type renterDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	FirstName string               `bson:"firstname"`
	LastName  string               `bson:"lastname"`
	Email     string               `bson:"email"`
	Password  string               `bson:"password"`
	Mobile    string               `bson:"mobile"`
	Homes     []primitive.ObjectID `bson:"homes"`
	Commits   []primitive.ObjectID `bson:"commits,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func objectIDFromHex(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %q: %w", what, id, err)
	}
	return oid, nil
}

func hexList(ids []primitive.ObjectID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, oid := range ids {
		out = append(out, oid.Hex())
	}
	return out
}

func oidList(ids []string, what string) ([]primitive.ObjectID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := objectIDFromHex(id, what)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		Title:     l.Title,
		Name:      l.Name,
		Mobile:    l.Mobile,
		Street:    l.Street,
		Town:      l.Town,
		District:  l.District,
		Pincode:   l.Pincode,
		Pluscode:  l.Pluscode,
		RentPrice: l.RentPrice,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}

	var err error
	if l.ID != "" {
		if doc.ID, err = objectIDFromHex(l.ID, "listing"); err != nil {
			return nil, err
		}
	}
	if doc.Renter, err = objectIDFromHex(l.RenterID, "renter"); err != nil {
		return nil, err
	}
	if doc.Commits, err = oidList(l.CommitIDs, "commit"); err != nil {
		return nil, err
	}

	doc.Images = make([]imageDocument, 0, len(l.Images))
	for _, img := range l.Images {
		doc.Images = append(doc.Images, imageDocument{
			Data:        img.Data,
			ContentType: img.ContentType,
			Filename:    img.Filename,
		})
	}
	return doc, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	images := make([]domain.Image, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, domain.Image{
			Data:        img.Data,
			ContentType: img.ContentType,
			Filename:    img.Filename,
		})
	}
	return &domain.Listing{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Name:      d.Name,
		Mobile:    d.Mobile,
		Street:    d.Street,
		Town:      d.Town,
		District:  d.District,
		Pincode:   d.Pincode,
		Pluscode:  d.Pluscode,
		RentPrice: d.RentPrice,
		Images:    images,
		RenterID:  d.Renter.Hex(),
		CommitIDs: hexList(d.Commits),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toRenterDocument(r *domain.Renter) (*renterDocument, error) {
	doc := &renterDocument{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Password:  r.Password,
		Mobile:    r.Mobile,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}

	var err error
	if r.ID != "" {
		if doc.ID, err = objectIDFromHex(r.ID, "renter"); err != nil {
			return nil, err
		}
	}
	if doc.Homes, err = oidList(r.ListingIDs, "listing"); err != nil {
		return nil, err
	}
	if doc.Commits, err = oidList(r.CommitIDs, "commit"); err != nil {
		return nil, err
	}
	if doc.Homes == nil {
		doc.Homes = []primitive.ObjectID{}
	}
	return doc, nil
}

func toDomainRenter(d *renterDocument) *domain.Renter {
	return &domain.Renter{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Email:      d.Email,
		Password:   d.Password,
		Mobile:     d.Mobile,
		ListingIDs: hexList(d.Homes),
		CommitIDs:  hexList(d.Commits),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
