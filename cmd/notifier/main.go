package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"hotelier/pkg/config"
	"hotelier/pkg/contracts"
	"hotelier/pkg/kafka"
)

const ServiceName = "notifier"

// The notifier consumes reservation lifecycle events and delivers guest
// notifications. Delivery is currently a structured log line per event; the
// consumer loop, retries and offset handling are the real machinery.
func main() {
	cfg := config.Load(ServiceName)

	if !cfg.KafkaEnabled() {
		cfg.Log.Fatal("Notifier requires Kafka brokers to be configured")
	}

	consumer, err := kafka.NewConsumer(
		cfg.KafkaBrokers,
		cfg.ReservationEventsTopic,
		cfg.NotifierGroupID,
		handleReservationEvent(cfg),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Notifier started",
		"topic", cfg.ReservationEventsTopic,
		"group_id", cfg.NotifierGroupID,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}

func handleReservationEvent(cfg *config.Config) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event contracts.ReservationEvent
		if err := msg.DecodeValue(&event); err != nil {
			cfg.Log.Error("Failed to decode reservation event",
				"key", msg.Key,
				"error", err,
			)
			// Malformed payloads never become valid; do not retry.
			return nil
		}

		switch msg.GetEventType() {
		case contracts.EventReservationCreated:
			cfg.Log.Info("Booking confirmation notification",
				"reservation_id", event.ReservationID,
				"user_id", event.UserID,
				"hotel_id", event.HotelID,
				"start", event.Start,
				"end", event.End,
				"total_cents", event.TotalCents,
			)
		case contracts.EventReservationCancelled:
			cfg.Log.Info("Cancellation notification",
				"reservation_id", event.ReservationID,
				"user_id", event.UserID,
				"hotel_id", event.HotelID,
			)
		default:
			cfg.Log.Warn("Unknown reservation event type",
				"event_type", msg.GetEventType(),
				"key", msg.Key,
			)
		}
		return nil
	}
}
