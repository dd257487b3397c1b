// Package nats publishes listing mutations to the message bus. The Discord
// bridge subscribes to these subjects and mirrors the changes back to the
// marketplace channel (embeds, thread state, owner DMs).
package nats

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
)

// Bus subjects
const (
	// SubjectListingCreated carries new listings
	SubjectListingCreated = "shopkeeper.listings.created"
	// SubjectListingEdited carries listing field changes
	SubjectListingEdited = "shopkeeper.listings.edited"
	// SubjectListingHidden carries listing moderation hides
	SubjectListingHidden = "shopkeeper.listings.hidden"
	// SubjectImageHidden carries image moderation hides
	SubjectImageHidden = "shopkeeper.images.hidden"
	// SubjectReminders carries per-owner issue reminder notices
	SubjectReminders = "shopkeeper.reminders"
)

// Publisher publishes JSON messages to NATS
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS and returns a publisher
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("shopkeeper-api"))
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

// Publish marshals data to JSON and publishes it on subject
func (p *Publisher) Publish(_ context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, payload)
}

// Close drains and closes the connection
func (p *Publisher) Close() {
	p.conn.Close()
}
