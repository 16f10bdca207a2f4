package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobtrack/jobtrack-be/internal/config"
	"github.com/jobtrack/jobtrack-be/internal/worker"
	"github.com/jobtrack/jobtrack-be/shared/logger"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
	"github.com/jobtrack/jobtrack-be/shared/rabbitmq"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or flags")
	}

	defaultConfigPath := os.Getenv("WORKER_SERVICE_CONFIG_PATH")
	if defaultConfigPath == "" {
		defaultConfigPath = "configs/worker-service/config.yaml"
	}
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ValidateWorkerConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := logger.New(&logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cfg.Logging.Output,
		EnableSource: cfg.Logging.EnableCaller,
		TimeFormat:   time.RFC3339,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger.Info("Starting worker service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	dbClient, err := postgresql.NewClient(&postgresql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectRetries:  cfg.Database.ConnectRetries,
		RetryInterval:   cfg.Database.RetryInterval,
	}, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	rabbitClient, err := rabbitmq.NewClient(&rabbitmq.Config{
		Host:            cfg.RabbitMQ.Host,
		Port:            cfg.RabbitMQ.Port,
		User:            cfg.RabbitMQ.User,
		Password:        cfg.RabbitMQ.Password,
		VHost:           cfg.RabbitMQ.VHost,
		ExchangeName:    cfg.RabbitMQ.Exchange.Name,
		ExchangeType:    cfg.RabbitMQ.Exchange.Type,
		ExchangeDurable: cfg.RabbitMQ.Exchange.Durable,
		QueueName:       cfg.RabbitMQ.Queue.Name,
		QueueDurable:    cfg.RabbitMQ.Queue.Durable,
		RoutingKey:      cfg.RabbitMQ.RoutingKey,
		RetryAttempts:   cfg.RabbitMQ.Connection.RetryAttempts,
		RetryInterval:   cfg.RabbitMQ.Connection.RetryInterval,
		Heartbeat:       cfg.RabbitMQ.Connection.Heartbeat,
	}, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
	}
	defer rabbitClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := worker.NewWorker(&worker.Config{
		Logger:        appLogger.Logger,
		DBClient:      dbClient,
		RabbitClient:  rabbitClient,
		Concurrency:   cfg.Worker.Concurrency,
		PrefetchCount: cfg.RabbitMQ.Consumer.PrefetchCount,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("worker failed: %w", err)
		}
	case <-quit:
		appLogger.Info("Shutting down worker...")
		cancel()

		done := make(chan struct{})
		go func() {
			w.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(cfg.Worker.ShutdownTimeout):
			appLogger.Warn("Worker shutdown timed out")
		}
	}

	appLogger.Info("Worker service stopped")
	return nil
}
