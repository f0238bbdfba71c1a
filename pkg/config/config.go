package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelier/pkg/logger"
)

type Config struct {
	Port string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxRequestSize  int

	BcryptCost int

	MinStarRating int
	MaxStarRating int

	KafkaBrokers           []string
	ReservationEventsTopic string
	NotifierGroupID        string

	MongoURI         string
	MongoDatabase    string
	MongoConnTimeout time.Duration
	ArchiveTimeout   time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		MaxRequestSize:  getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		BcryptCost: getEnvNum(EnvBcryptCost, DefaultBcryptCost),

		MinStarRating: DefaultMinStarRating,
		MaxStarRating: DefaultMaxStarRating,

		KafkaBrokers:           getEnvList(EnvKafkaBrokers),
		ReservationEventsTopic: getEnvStr(EnvReservationEventsTopic, DefaultReservationEventsTopic),
		NotifierGroupID:        getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),

		MongoURI:         getEnvStr(EnvMongoURI, ""),
		MongoDatabase:    getEnvStr(EnvMongoDatabase, DefaultMongoDatabase),
		MongoConnTimeout: getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		ArchiveTimeout:   getEnvDuration(EnvArchiveTimeout, DefaultArchiveTimeout),

		Log: logger.New(logger.Config{
			Level:   getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:  logger.JSON,
			Service: serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// KafkaEnabled reports whether reservation events should be published.
func (cfg *Config) KafkaEnabled() bool {
	return len(cfg.KafkaBrokers) > 0
}

// ArchiveEnabled reports whether the Mongo reservation archive is configured.
func (cfg *Config) ArchiveEnabled() bool {
	return cfg.MongoURI != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BcryptCost must be between 4 and 31, got: %d", cfg.BcryptCost))
	}
	if cfg.MinStarRating < 1 || cfg.MaxStarRating < cfg.MinStarRating {
		errors = append(errors, fmt.Sprintf("star rating bounds are inconsistent: [%d, %d]", cfg.MinStarRating, cfg.MaxStarRating))
	}
	if cfg.MongoURI != "" && !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoURI != "" && cfg.MongoDatabase == "" {
		errors = append(errors, "MongoDatabase cannot be empty when MongoURI is set")
	}
	if cfg.KafkaEnabled() && cfg.ReservationEventsTopic == "" {
		errors = append(errors, "ReservationEventsTopic cannot be empty when Kafka brokers are set")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"bcrypt_cost", cfg.BcryptCost,
		"star_rating_bounds", fmt.Sprintf("[%d, %d]", cfg.MinStarRating, cfg.MaxStarRating),
		"kafka_enabled", cfg.KafkaEnabled(),
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"reservation_events_topic", cfg.ReservationEventsTopic,
		"archive_enabled", cfg.ArchiveEnabled(),
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabase,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
