package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/bcrypt"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/adapters/out/smtp"
	"dispatch/internal/jobs"
	"dispatch/internal/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	amqpDialAttempts = 5
	amqpDialDelay    = 2 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	configs, err := cmd.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(logger.Config{Level: configs.LogLevel, File: configs.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, appLogger); err != nil {
		appLogger.WithError(err).Fatal("dispatch service stopped")
	}
}

func run(ctx context.Context, configs cmd.Config, appLogger *logrus.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{Logger: logger.Gorm(appLogger)})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	conn, err := rabbitmq.Dial(ctx, configs.AMQPURL, amqpDialAttempts, amqpDialDelay, appLogger)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	app := cmd.NewCompositionRoot(configs, gormDB, cmd.Transports{
		Mailer: smtp.NewMailer(smtp.Config{
			Host:     configs.SMTPHost,
			Port:     configs.SMTPPort,
			User:     configs.SMTPUser,
			Password: configs.SMTPPassword,
			From:     configs.SMTPFrom,
		}),
		Publisher: rabbitmq.NewPushPublisher(conn, configs.AMQPPushExchange),
		Hasher:    bcrypt.NewHasher(0),
	}, appLogger)

	relay := jobs.NewPushRelayJob(
		app.CreateRelayPushesCommandHandler(),
		configs.PushRelaySchedule,
		configs.PushRelayBatch,
		appLogger,
	)
	app.AddCommitHook(relay.OnCommit)

	jobManager := jobs.NewJobManager(relay)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, configs.HTTPPort)
}

func startWebServer(ctx context.Context, port string) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}
