package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the process configuration, read once in main.
type Config struct {
	Server   Server
	Log      Log
	Database Database
	Redis    RedisConfig
	Kafka    KafkaConfig
	Auth     Auth
	Bulk     Bulk
	Catalog  Catalog
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	// RequestTimeout bounds handler work; the write timeout is derived from it.
	RequestTimeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

// Database selects the PostgreSQL backend. An empty URL runs the in-memory
// stores, which is what local development and handler tests use.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	TxTimeout       time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures request notifications. No brokers disables
// publishing in favour of the in-memory publisher.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	// BreakerFailures consecutive publish failures stop publishing for
	// BreakerCooldown.
	BreakerFailures int
	BreakerCooldown time.Duration
}

type Auth struct {
	JWTSigningKey string
	JWTIssuer     string
	AdminToken    string
}

// Bulk holds limits on bulk data requests.
type Bulk struct {
	MaxDimensions int
}

// Catalog configures identifier validation.
type Catalog struct {
	CompanyCacheTTL    time.Duration
	MinReportingPeriod int
	DataTypes          []string
}

// DefaultDataTypes are the frameworks a data request may ask for.
var DefaultDataTypes = []string{
	"additional-company-information",
	"eutaxonomy-financials",
	"eutaxonomy-non-financials",
	"lksg",
	"nuclear-and-gas",
	"p2p",
	"pcaf",
	"sfdr",
	"vsme",
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("SOURCING_ADDR", ":8080"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			TxTimeout:       getDuration("DATABASE_TX_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:           getList("KAFKA_BROKERS", nil),
			Topic:             getEnv("KAFKA_REQUEST_TOPIC", "data-request-events"),
			Partitions:        int32(getInt("KAFKA_REQUEST_TOPIC_PARTITIONS", 3)),
			ReplicationFactor: int16(getInt("KAFKA_REQUEST_TOPIC_REPLICATION", 1)),
			BreakerFailures:   getInt("KAFKA_BREAKER_FAILURES", 5),
			BreakerCooldown:   getDuration("KAFKA_BREAKER_COOLDOWN", 30*time.Second),
		},
		Auth: Auth{
			// Use a default for development - should be overridden in production
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     getEnv("JWT_ISSUER", "sourcing"),
			AdminToken:    os.Getenv("ADMIN_API_TOKEN"),
		},
		Bulk: Bulk{
			MaxDimensions: getInt("BULK_REQUEST_MAX_DIMENSIONS", 10000),
		},
		Catalog: Catalog{
			CompanyCacheTTL:    getDuration("COMPANY_CACHE_TTL", 5*time.Minute),
			MinReportingPeriod: getInt("MIN_REPORTING_PERIOD", 2000),
			DataTypes:          getList("DATA_TYPES", DefaultDataTypes),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
