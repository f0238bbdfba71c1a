package main

import (
	"context"
	"sync"

	hotelhandler "hotelier/internal/hotels/handler"
	hotelregistry "hotelier/internal/hotels/registry"
	hotelservice "hotelier/internal/hotels/service"
	hotelvalidator "hotelier/internal/hotels/validator"
	"hotelier/internal/reservations/archive"
	reservationhandler "hotelier/internal/reservations/handler"
	reservationregistry "hotelier/internal/reservations/registry"
	reservationservice "hotelier/internal/reservations/service"
	reservationvalidator "hotelier/internal/reservations/validator"
	userhandler "hotelier/internal/users/handler"
	userregistry "hotelier/internal/users/registry"
	userservice "hotelier/internal/users/service"
	uservalidator "hotelier/internal/users/validator"
	"hotelier/pkg/app"
	"hotelier/pkg/config"
	"hotelier/pkg/kafka"
)

const ServiceName = "hotelier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Hotelier service")

	serverApp := app.NewApplication(cfg)

	hotels := hotelregistry.NewHotelRegistry()
	users := userregistry.NewUserDirectory()
	reservations := reservationregistry.NewReservationBook()

	// One mutex serializes every availability check-then-commit, whether it
	// comes through direct booking or through a reservation.
	bookingMu := &sync.Mutex{}

	hotelSvc := hotelservice.NewHotelService(
		hotels,
		hotelvalidator.NewHotelValidator(cfg.Log),
		cfg,
		bookingMu,
	)
	userSvc := userservice.NewUserService(
		users,
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	publisher := initPublisher(cfg, serverApp)
	reservationArchive := initArchive(cfg, serverApp)

	reservationSvc := reservationservice.NewReservationService(
		reservations,
		hotels,
		users,
		reservationvalidator.NewReservationValidator(cfg.Log),
		cfg,
		bookingMu,
		publisher,
		reservationArchive,
	)

	serverApp.SetApp(
		hotelhandler.NewHotelHandler(hotelSvc, cfg.Log),
		userhandler.NewUserHandler(userSvc, cfg.Log),
		reservationhandler.NewReservationHandler(reservationSvc, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher builds the Kafka producer when brokers are configured. The
// service runs without one; reservation events are then simply not emitted.
func initPublisher(cfg *config.Config, serverApp *app.Application) reservationservice.EventPublisher {
	if !cfg.KafkaEnabled() {
		cfg.Log.Info("Kafka brokers not configured, reservation events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.ReservationEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.ReservationEventsTopic)
	return producer
}

// initArchive connects the Mongo reservation archive when a URI is
// configured. Without one the in-memory ledger is the only record.
func initArchive(cfg *config.Config, serverApp *app.Application) archive.ReservationArchive {
	if !cfg.ArchiveEnabled() {
		cfg.Log.Info("Mongo URI not configured, reservation archive disabled")
		return nil
	}

	arch, err := archive.NewMongoArchive(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to connect reservation archive", "error", err)
	}
	serverApp.OnShutdown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := arch.Close(ctx); err != nil {
			cfg.Log.Error("Failed to close reservation archive", "error", err)
		}
	})

	cfg.Log.Info("Reservation archive initialized", "database", cfg.MongoDatabase)
	return arch
}
