package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/renting/domain"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewListingRepository(db *mongo.Database, logger *zap.Logger) *ListingRepository {
	return &ListingRepository{
		collection: db.Collection("listings"),
		logger:     logger.Named("ListingRepository"),
	}
}

// Create persists a listing with its embedded images in one durable write.
// Identity and timestamps are assigned here and written back to the entity.
func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("failed to insert listing", zap.String("renterID", listing.RenterID), zap.Error(err))
		return fmt.Errorf("persist listing: %w", err)
	}

	listing.ID = doc.ID.Hex()
	r.logger.Info("listing created", zap.String("listingID", listing.ID), zap.String("renterID", listing.RenterID))
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectIDFromHex(id, "listing")
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("failed to fetch listing", zap.String("listingID", id), zap.Error(err))
		return nil, fmt.Errorf("fetch listing %s: %w", id, err)
	}
	return toDomainListing(&doc), nil
}

// FindAll returns every listing. Order is whatever the storage engine yields.
func (r *ListingRepository) FindAll(ctx context.Context) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to list listings", zap.Error(err))
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("failed to decode listings", zap.Error(err))
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings, nil
}

// Delete removes the listing record only. The owner's reference set is the
// ingestion layer's responsibility.
func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id, "listing")
	if err != nil {
		return domain.ErrListingNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("failed to delete listing", zap.String("listingID", id), zap.Error(err))
		return fmt.Errorf("delete listing %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	r.logger.Info("listing deleted", zap.String("listingID", id))
	return nil
}
