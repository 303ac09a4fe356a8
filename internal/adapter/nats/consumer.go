package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/konecta/cart-service/internal/app/config"
	"github.com/konecta/cart-service/internal/domain/event"
	"github.com/konecta/cart-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
)

const handleTimeout = 5 * time.Second

type ConsumerState int32

const (
	StateDisconnected ConsumerState = iota
	StateConnecting
	StateConsuming
)

func (s ConsumerState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConsuming:
		return "consuming"
	default:
		return "disconnected"
	}
}

// CartTTLExtender is the slice of the cart service the consumer needs.
type CartTTLExtender interface {
	ExtendTTL(ctx context.Context, userID string, additional time.Duration) error
}

// OrderCreatedConsumer binds a durable JetStream consumer to the
// order-created subject and extends the cart TTL of the referenced user for
// every decodable event. Messages are acknowledged explicitly; anything that
// cannot be processed is terminated so the server never redelivers it.
type OrderCreatedConsumer struct {
	conn      *nats.Conn
	carts     CartTTLExtender
	log       logger.Logger
	cfg       config.ConsumerConfig
	extension time.Duration

	sub   *nats.Subscription
	state atomic.Int32
}

func NewOrderCreatedConsumer(
	conn *nats.Conn,
	carts CartTTLExtender,
	log logger.Logger,
	cfg config.ConsumerConfig,
	extension time.Duration,
) (*OrderCreatedConsumer, error) {
	if conn == nil {
		return nil, fmt.Errorf("NATS connection cannot be nil")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service cannot be nil")
	}
	return &OrderCreatedConsumer{
		conn:      conn,
		carts:     carts,
		log:       log,
		cfg:       cfg,
		extension: extension,
	}, nil
}

// Start declares the durable topology and begins consuming. Any failure
// leaves the consumer disconnected; there is no internal retry, the caller
// decides whether to restart the process.
func (c *OrderCreatedConsumer) Start() error {
	c.state.Store(int32(StateConnecting))

	js, err := c.conn.JetStream()
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return fmt.Errorf("failed to obtain JetStream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     c.cfg.Stream,
		Subjects: []string{c.cfg.Subject},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return fmt.Errorf("failed to declare stream %s: %w", c.cfg.Stream, err)
	}

	sub, err := js.QueueSubscribe(
		c.cfg.Subject,
		c.cfg.DurableName,
		c.handleMessage,
		nats.Durable(c.cfg.DurableName),
		nats.ManualAck(),
		nats.AckExplicit(),
	)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		return fmt.Errorf("failed to subscribe to %s: %w", c.cfg.Subject, err)
	}

	c.sub = sub
	c.state.Store(int32(StateConsuming))
	c.log.Infof("Consuming order-created events: stream=%s subject=%s durable=%s", c.cfg.Stream, c.cfg.Subject, c.cfg.DurableName)
	return nil
}

// ackableMsg is the slice of *nats.Msg the dispatch path needs.
type ackableMsg interface {
	Ack(opts ...nats.AckOpt) error
	Term(opts ...nats.AckOpt) error
}

func (c *OrderCreatedConsumer) handleMessage(msg *nats.Msg) {
	c.dispatch(msg.Data, msg)
}

func (c *OrderCreatedConsumer) dispatch(data []byte, msg ackableMsg) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := c.processMessage(ctx, data); err != nil {
		c.log.Errorf("Failed to process order-created message: %v", err)
		// Terminate instead of nack: a malformed or unprocessable message
		// would fail identically on every redelivery.
		if termErr := msg.Term(); termErr != nil {
			c.log.Errorf("Failed to terminate message: %v", termErr)
		}
		return
	}

	if err := msg.Ack(); err != nil {
		c.log.Errorf("Failed to ack order-created message: %v", err)
	}
}

func (c *OrderCreatedConsumer) processMessage(ctx context.Context, data []byte) error {
	var evt event.OrderCreated
	if err := json.Unmarshal(data, &evt); err != nil {
		return fmt.Errorf("failed to decode order-created event: %w", err)
	}
	if evt.UserID == nil {
		return fmt.Errorf("order-created event %d carries no user reference", evt.OrderID)
	}

	userID := strconv.FormatInt(*evt.UserID, 10)
	if err := c.carts.ExtendTTL(ctx, userID, c.extension); err != nil {
		return fmt.Errorf("failed to extend cart ttl for user %s: %w", userID, err)
	}

	c.log.Infof("Extended cart TTL for user %s by %s due to order %d", userID, c.extension, evt.OrderID)
	return nil
}

// Stop drains the subscription: in-flight handlers run to completion and
// anything unacknowledged stays on the stream for redelivery.
func (c *OrderCreatedConsumer) Stop() error {
	defer c.state.Store(int32(StateDisconnected))

	if c.sub == nil {
		return nil
	}
	if err := c.sub.Drain(); err != nil {
		return fmt.Errorf("failed to drain order-created subscription: %w", err)
	}
	return nil
}

func (c *OrderCreatedConsumer) State() ConsumerState {
	return ConsumerState(c.state.Load())
}
