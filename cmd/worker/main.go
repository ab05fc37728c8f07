package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/mailer"
	"storefront/internal/models"
	"storefront/internal/mykafka"
	"storefront/internal/repo"
	"storefront/internal/transport"
)

// The worker drains the notification topic and runs the slow bulk email
// sends the request path refuses to wait for.
func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if configuration.KAFKA_ADDRESS == "" {
		log.Fatal("KAFKA_ADDRESS is required for the worker")
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	store := repo.New(db)

	m := &mailer.Mailer{
		Host:     configuration.SMTP_HOST,
		Port:     configuration.SMTP_PORT,
		Username: configuration.SMTP_USERNAME,
		Password: configuration.SMTP_PASSWORD,
		From:     configuration.SMTP_FROM,
	}

	consumer := mykafka.NewConsumer(
		[]string{configuration.KAFKA_ADDRESS},
		mykafka.TopicNotificationEvents,
		"storefront-notifier",
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, logger)

	logger.Info("notification worker started")

	for {
		var msg transport.NotifyRequest
		if err := consumer.Next(ctx, &msg); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			logger.Error("consume_error", "error", err)
			continue
		}

		recipients, err := customerUsernames(ctx, store)
		if err != nil {
			logger.Error("recipient_lookup_error", "error", err)
			continue
		}
		if err := m.NotifyCustomers(ctx, "Storefront news", msg.Message, recipients); err != nil {
			logger.Error("notify_error", "error", err)
		}
	}

	logger.Info("notification worker stopped")
}

// Accounts sign up with an email-style username; that is the address the
// bulk send goes to.
func customerUsernames(ctx context.Context, store *repo.Store) ([]string, error) {
	var usernames []string
	err := store.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleUser).
		Pluck("username", &usernames).Error
	return usernames, err
}
