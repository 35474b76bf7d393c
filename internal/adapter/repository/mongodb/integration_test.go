package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/renting/domain"
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../../../.env")
	os.Exit(m.Run())
}

// testDatabase connects to the Mongo instance named by MONGO_TEST_URI and
// returns a throwaway database. Skips when the variable is unset.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI is not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("renthome_test")
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestListingLifecycle_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	listings := NewListingRepository(db, zap.NewNop())
	renters := NewRenterRepository(db, zap.NewNop())

	renter := &domain.Renter{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "$2a$10$hash",
		Mobile:    "555",
	}
	require.NoError(t, renters.Create(ctx, renter))
	require.NotEmpty(t, renter.ID)

	listing := &domain.Listing{
		Title:     "Flat A",
		Name:      "Jane",
		Mobile:    "555",
		Street:    "1 Rd",
		Town:      "T",
		District:  "D",
		Pincode:   "12345",
		Pluscode:  "ABC",
		RentPrice: "1000",
		RenterID:  renter.ID,
		Images: []domain.Image{
			{Data: []byte{0x89, 0x50, 0x4e, 0x47}, ContentType: "image/png", Filename: "a.png"},
		},
	}
	require.NoError(t, listings.Create(ctx, listing))
	require.NoError(t, renters.AddListingRef(ctx, renter.ID, listing.ID))

	stored, err := listings.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flat A", stored.Title)
	require.Len(t, stored.Images, 1)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, stored.Images[0].Data)

	owner, err := renters.FindByID(ctx, renter.ID)
	require.NoError(t, err)
	assert.True(t, owner.OwnsListing(listing.ID))

	require.NoError(t, renters.RemoveListingRef(ctx, renter.ID, listing.ID))
	require.NoError(t, listings.Delete(ctx, listing.ID))

	_, err = listings.FindByID(ctx, listing.ID)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
	owner, err = renters.FindByID(ctx, renter.ID)
	require.NoError(t, err)
	assert.False(t, owner.OwnsListing(listing.ID))
}

func TestRenterDuplicateEmail_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	renters := NewRenterRepository(db, zap.NewNop())

	first := &domain.Renter{FirstName: "Jane", Email: "dup@example.com", Password: "x", Mobile: "1"}
	require.NoError(t, renters.Create(ctx, first))

	second := &domain.Renter{FirstName: "John", Email: "dup@example.com", Password: "y", Mobile: "2"}
	err := renters.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRemoveListingRefMissingRenter_Integration(t *testing.T) {
	db := testDatabase(t)
	renters := NewRenterRepository(db, zap.NewNop())

	// A missing or malformed renter id is a logged no-op.
	assert.NoError(t, renters.RemoveListingRef(context.Background(), "not-a-hex-id", "whatever"))
}
