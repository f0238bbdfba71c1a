package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvMaxRequestSize  = "MAX_REQUEST_SIZE"

	EnvBcryptCost = "BCRYPT_COST"

	EnvKafkaBrokers           = "KAFKA_BROKERS"
	EnvReservationEventsTopic = "RESERVATION_EVENTS_TOPIC"
	EnvNotifierGroupID        = "NOTIFIER_GROUP_ID"

	EnvMongoURI         = "MONGO_URI"
	EnvMongoDatabase    = "MONGO_DATABASE"
	EnvMongoConnTimeout = "MONGO_CONN_TIMEOUT"
	EnvArchiveTimeout   = "ARCHIVE_TIMEOUT"
)
