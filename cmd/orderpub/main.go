// orderpub publishes an order-created event read from stdin to the durable
// order-events stream, so the consumer path can be exercised without the
// order service running.
//
//	echo '{"orderId":1,"userId":42,"totalAmount":19.98}' | go run ./cmd/orderpub
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	natsadapter "github.com/konecta/cart-service/internal/adapter/nats"
	"github.com/konecta/cart-service/internal/app/config"
	"github.com/konecta/cart-service/internal/platform/logger"
)

func main() {
	cfg := config.MustLoad()

	pubLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:    cfg.Logger.Level,
		Encoding: "console",
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	conn, err := natsadapter.NewConnection(cfg.NATS, pubLogger)
	if err != nil {
		pubLogger.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer conn.Close()

	publisher, err := natsadapter.NewJetStreamPublisher(conn)
	if err != nil {
		pubLogger.Fatalf("Failed to create publisher: %v", err)
	}

	var payload map[string]any
	if err := json.NewDecoder(os.Stdin).Decode(&payload); err != nil {
		pubLogger.Fatalf("Failed to read event JSON from stdin: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := publisher.Publish(ctx, cfg.Consumer.Subject, payload); err != nil {
		pubLogger.Fatalf("Failed to publish event: %v", err)
	}
	pubLogger.Infof("Published order-created event to %s", cfg.Consumer.Subject)
}
