// Package events publishes domain events to a Redis stream for downstream consumers.
package events

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	commonredis "github.com/brandonbohn/adebackend/common/redis"
)

// Event types
const (
	ContactCreated   = "contact.created"
	DonorCreated     = "donor.created"
	VolunteerCreated = "volunteer.created"
	LeadCreated      = "lead.created"
	DonationRecorded = "donation.recorded"
	PaymentCallback  = "payment.callback"
)

// Publisher emits one event. Callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// StreamPublisher appends events to a Redis stream (XADD), keeping roughly
// the newest maxLen entries. maxLen <= 0 leaves the stream uncapped.
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
	logger *zap.Logger
}

func NewStreamPublisher(client *redis.Client, stream string, maxLen int64, logger *zap.Logger) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen, logger: logger}
}

func (p *StreamPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	id, err := commonredis.PublishJSONToStream(ctx, p.client, p.stream, p.maxLen, eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}
	p.logger.Debug("Event published",
		zap.String("stream", p.stream),
		zap.String("type", eventType),
		zap.String("id", id),
	)
	return nil
}

// NopPublisher discards events; used when Redis is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }
