package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/orderlock"
	"storefront/internal/adapters/out/postgres/historyrepo"
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/rabbitmq"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/logging"

	"github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	redisPoolSize   = 10
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return err
	}

	logger, syncLogs, err := logging.New(configs.LogLevel, configs.LogFormat)
	if err != nil {
		return err
	}
	defer syncLogs()

	gormDB, err := openDB(configs)
	if err != nil {
		return err
	}

	locker, closeLocker, err := newLocker(configs, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	publisher, closePublisher, err := newPublisher(configs, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	app := cmd.NewCompositionRoot(configs, gormDB, locker, publisher, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startWebServer(ctx, app, configs.HTTPPort, logger)
}

func openDB(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &historyrepo.OrderHistoryDTO{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return gormDB, nil
}

func newLocker(configs cmd.Config, logger *slog.Logger) (ports.OrderLocker, func(), error) {
	if configs.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, using in-process order locks")
		return orderlock.NewLocalLocker(configs.OrderLockWait), func() {}, nil
	}

	pool, err := radix.NewPool("tcp", configs.RedisAddr, redisPoolSize)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return orderlock.NewRedisLocker(pool, configs.OrderLockTTL, configs.OrderLockWait), func() { _ = pool.Close() }, nil
}

func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.OrderEventPublisher, func(), error) {
	if configs.AMQPURL == "" {
		logger.Info("AMQP_URL not set, order change notifications are disabled")
		return rabbitmq.NewNopPublisher(logger), func() {}, nil
	}

	conn, err := amqp.Dial(configs.AMQPURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	publisher, err := rabbitmq.NewPublisher(conn, configs.AMQPExchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return publisher, func() { _ = conn.Close() }, nil
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) error {
	auth, err := app.CreateAuthenticator()
	if err != nil {
		return err
	}

	e, err := httpin.NewRouter(app.CreateServer(), auth, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", port)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}
