package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxRequestSize  = 1 * 1024 * 1024 // 1MB

	DefaultBcryptCost = 10

	DefaultMinStarRating = 1
	DefaultMaxStarRating = 5

	DefaultReservationEventsTopic = "reservation-events"
	DefaultNotifierGroupID        = "hotelier-notifier"

	DefaultMongoDatabase    = "hotelier"
	DefaultMongoConnTimeout = 10 * time.Second
	DefaultArchiveTimeout   = 5 * time.Second
)
