package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

type MessagePublisher interface {
	Publish(ctx context.Context, subject string, message interface{}) error
	PublishRaw(ctx context.Context, subject string, data []byte) error
}

// jetstreamPublisher publishes through JetStream so that messages land in the
// durable order-events stream and survive until the consumer acknowledges
// them.
type jetstreamPublisher struct {
	js nats.JetStreamContext
}

func NewJetStreamPublisher(conn *nats.Conn) (MessagePublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain JetStream context: %w", err)
	}
	return &jetstreamPublisher{js: js}, nil
}

func (p *jetstreamPublisher) Publish(ctx context.Context, subject string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message to JSON for subject %s: %w", subject, err)
	}
	return p.PublishRaw(ctx, subject, data)
}

func (p *jetstreamPublisher) PublishRaw(ctx context.Context, subject string, data []byte) error {
	if _, err := p.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}
	return nil
}
