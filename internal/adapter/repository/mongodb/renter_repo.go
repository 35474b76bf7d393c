package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/renting/domain"
)

type RenterRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewRenterRepository(db *mongo.Database, logger *zap.Logger) *RenterRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("renters")
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("failed to ensure unique email index (may already exist)", zap.Error(err))
	}

	return &RenterRepository{
		collection: collection,
		logger:     logger.Named("RenterRepository"),
	}
}

func (r *RenterRepository) Create(ctx context.Context, renter *domain.Renter) error {
	now := time.Now()
	renter.CreatedAt = now
	renter.UpdatedAt = now

	doc, err := toRenterDocument(renter)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code == 11000 {
					r.logger.Warn("duplicate email during renter creation", zap.String("email", renter.Email))
					return domain.ErrDuplicateEmail
				}
			}
		}
		r.logger.Error("failed to insert renter", zap.String("email", renter.Email), zap.Error(err))
		return fmt.Errorf("persist renter: %w", err)
	}

	renter.ID = doc.ID.Hex()
	r.logger.Info("renter created", zap.String("renterID", renter.ID))
	return nil
}

func (r *RenterRepository) FindByID(ctx context.Context, id string) (*domain.Renter, error) {
	oid, err := objectIDFromHex(id, "renter")
	if err != nil {
		return nil, domain.ErrRenterNotFound
	}

	var doc renterDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRenterNotFound
		}
		r.logger.Error("failed to fetch renter", zap.String("renterID", id), zap.Error(err))
		return nil, fmt.Errorf("fetch renter %s: %w", id, err)
	}
	return toDomainRenter(&doc), nil
}

func (r *RenterRepository) FindByEmail(ctx context.Context, email string) (*domain.Renter, error) {
	var doc renterDocument
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRenterNotFound
		}
		r.logger.Error("failed to fetch renter by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("fetch renter by email: %w", err)
	}
	return toDomainRenter(&doc), nil
}

func (r *RenterRepository) FindAll(ctx context.Context) ([]*domain.Renter, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("failed to list renters", zap.Error(err))
		return nil, fmt.Errorf("list renters: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*renterDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("failed to decode renters", zap.Error(err))
		return nil, fmt.Errorf("decode renters: %w", err)
	}

	renters := make([]*domain.Renter, 0, len(docs))
	for _, doc := range docs {
		renters = append(renters, toDomainRenter(doc))
	}
	return renters, nil
}

// AddListingRef appends the listing id to the renter's owned-listing set.
// $addToSet makes retries idempotent.
func (r *RenterRepository) AddListingRef(ctx context.Context, renterID, listingID string) error {
	renterOID, err := objectIDFromHex(renterID, "renter")
	if err != nil {
		return domain.ErrRenterNotFound
	}
	listingOID, err := objectIDFromHex(listingID, "listing")
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": renterOID}, bson.M{
		"$addToSet": bson.M{"homes": listingOID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		r.logger.Error("failed to add listing reference",
			zap.String("renterID", renterID), zap.String("listingID", listingID), zap.Error(err))
		return fmt.Errorf("add listing reference: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrRenterNotFound
	}
	return nil
}

// RemoveListingRef pulls the listing id from the renter's owned-listing set.
// A renter or reference that is already gone is a no-op, so deletion of a
// listing is never blocked by a missing owner.
func (r *RenterRepository) RemoveListingRef(ctx context.Context, renterID, listingID string) error {
	renterOID, err := objectIDFromHex(renterID, "renter")
	if err != nil {
		r.logger.Warn("skipping reference removal for malformed renter id",
			zap.String("renterID", renterID), zap.String("listingID", listingID))
		return nil
	}
	listingOID, err := objectIDFromHex(listingID, "listing")
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": renterOID}, bson.M{
		"$pull": bson.M{"homes": listingOID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		r.logger.Error("failed to remove listing reference",
			zap.String("renterID", renterID), zap.String("listingID", listingID), zap.Error(err))
		return fmt.Errorf("remove listing reference: %w", err)
	}
	return nil
}
