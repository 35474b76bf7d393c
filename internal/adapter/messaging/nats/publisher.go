package nats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectListingCreated   = "listing.created"
	SubjectListingDeleted   = "listing.deleted"
	SubjectRenterRegistered = "renter.registered"
)

// Event is the envelope published on every subject.
type Event struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	ListingID  string    `json:"listingId,omitempty"`
	RenterID   string    `json:"renterId,omitempty"`
}

type Publisher struct {
	conn *nats.Conn
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

func (p *Publisher) Publish(ctx context.Context, subject string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, jsonData)
}

// PublishListingEvent publishes a listing lifecycle event with a fresh event id.
func (p *Publisher) PublishListingEvent(ctx context.Context, subject, listingID, renterID string) error {
	return p.Publish(ctx, subject, Event{
		ID:         uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		ListingID:  listingID,
		RenterID:   renterID,
	})
}

func (p *Publisher) Close() {
	p.conn.Close()
}
