package service

import (
	"context"
	"time"
)

// AdvertEventType names an advert state transition.
type AdvertEventType string

const (
	AdvertCreated  AdvertEventType = "advert.created"
	AdvertReplaced AdvertEventType = "advert.replaced"
	AdvertDeleted  AdvertEventType = "advert.deleted"
)

// AdvertEvent is emitted after an advert mutation has been persisted.
type AdvertEvent struct {
	RequestID  string          `json:"request_id,omitempty"` // For distributed tracing
	Type       AdvertEventType `json:"type"`
	AdvertID   string          `json:"advert_id"`
	OwnerID    string          `json:"owner_id"`
	Title      string          `json:"title,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAdvertEvent publishes an advert lifecycle event
	PublishAdvertEvent(ctx context.Context, event *AdvertEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
