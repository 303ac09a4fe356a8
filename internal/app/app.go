package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/konecta/cart-service/internal/adapter/nats"
	redisadapter "github.com/konecta/cart-service/internal/adapter/redis"
	"github.com/konecta/cart-service/internal/app/config"
	"github.com/konecta/cart-service/internal/platform/logger"
	httpport "github.com/konecta/cart-service/internal/port/http"
	"github.com/konecta/cart-service/internal/repository"
	"github.com/konecta/cart-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	server      *httpport.Server
	consumer    *natsadapter.OrderCreatedConsumer
	cartRepo    repository.CartRepository
	redisClient *redis.Client
	natsConn    *nats.Conn
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	logCfg := logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	}
	appLogger, err := logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger.Info("Logger initialized")
	appLogger.Infof("Configuration loaded: Env=%s, HTTP Port: %s", cfg.Env, cfg.HTTPServer.Port)

	appLogger.Info("Initializing Redis client...")
	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Errorf("Failed to initialize Redis client: %v", err)
		return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
	}
	appLogger.Info("Redis client initialized successfully")

	appLogger.Info("Initializing NATS connection...")
	natsConn, err := natsadapter.NewConnection(cfg.NATS, appLogger)
	if err != nil {
		appLogger.Errorf("Failed to initialize NATS connection: %v", err)
		return nil, fmt.Errorf("failed to initialize NATS connection: %w", err)
	}
	appLogger.Info("NATS connection initialized successfully")

	cartRepo := redisadapter.NewCartRepository(redisClient)
	appLogger.Info("CartRepository initialized")

	cartService := service.NewCartService(cartRepo, appLogger)
	appLogger.Info("CartService initialized")

	consumer, err := natsadapter.NewOrderCreatedConsumer(
		natsConn,
		cartService,
		appLogger,
		cfg.Consumer,
		cfg.Cart.OrderExtension,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order-created consumer: %w", err)
	}

	cartHandler := httpport.NewCartHandler(cartService, appLogger, cfg.Cart.DefaultTTL)
	router := httpport.NewRouter(cartHandler, cfg.JWT.Secret, appLogger)
	httpSrv := httpport.NewServer(
		appLogger,
		cfg.HTTPServer.Port,
		cfg.HTTPServer.ReadTimeout,
		cfg.HTTPServer.WriteTimeout,
		router,
	)
	appLogger.Info("HTTP server instance created")

	return &App{
		cfg:         cfg,
		log:         appLogger,
		server:      httpSrv,
		consumer:    consumer,
		cartRepo:    cartRepo,
		redisClient: redisClient,
		natsConn:    natsConn,
	}, nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	if err := a.consumer.Start(); err != nil {
		a.log.Fatalf("Failed to start order-created consumer: %v", err)
	}
	a.log.Info("Order-created consumer started")

	go func() {
		if err := a.server.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	a.log.Info("HTTP server started in a goroutine")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.consumer.Stop(); err != nil {
		a.log.Errorf("Error stopping order-created consumer: %v", err)
	} else {
		a.log.Info("Order-created consumer stopped")
	}

	if err := a.server.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}

	a.log.Info("Closing connections...")

	if a.natsConn != nil {
		a.natsConn.Close()
		a.log.Info("NATS connection closed")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}

	a.log.Info("Application shut down successfully")
}
