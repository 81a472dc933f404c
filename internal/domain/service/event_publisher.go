package service

import (
	"context"
)

// RegistrationEvent represents a completed registration, published for
// downstream consumers (analytics, welcome flows).
type RegistrationEvent struct {
	RequestID     string  `json:"request_id,omitempty"` // For distributed tracing
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	Latitude      float32 `json:"latitude"`
	Longitude     float32 `json:"longitude"`
	LocationKnown bool    `json:"location_known"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRegistrationEvent publishes a registration event for async processing
	PublishRegistrationEvent(ctx context.Context, event *RegistrationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
