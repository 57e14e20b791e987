package config

import (
	"os"
	"strconv"
	"time"
)

// StoreBackend selects which visitor record store the server runs against.
type StoreBackend string

const (
	StoreMemory   StoreBackend = "memory"
	StorePostgres StoreBackend = "postgres"
	StoreRedis    StoreBackend = "redis"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	Environment string
	Store       StoreBackend
	Postgres    PostgresConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// PostgresConfig holds the connection settings for the Postgres-backed store.
type PostgresConfig struct {
	URL string
}

// RedisConfig holds connection settings for the Redis-backed store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the audit trail producer.
// Empty Brokers disables the Kafka sink (audit events go to the memory sink).
type KafkaConfig struct {
	Brokers         string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
	AuditTopic      string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("GATEHOUSE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	store := StoreBackend(os.Getenv("GATEHOUSE_STORE"))
	switch store {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		store = StoreMemory
	}

	auditTopic := os.Getenv("GATEHOUSE_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "gatehouse.audit"
	}

	return Server{
		Addr:        addr,
		Environment: env,
		Store:       store,
		Postgres: PostgresConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Acks:            os.Getenv("KAFKA_ACKS"),
			Retries:         envInt("KAFKA_RETRIES", 3),
			DeliveryTimeout: envDuration("KAFKA_DELIVERY_TIMEOUT", 10*time.Second),
			AuditTopic:      auditTopic,
		},
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
