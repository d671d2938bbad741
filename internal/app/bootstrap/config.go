package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	RedisURL     string
	DatabaseURL  string
	KafkaBrokers []string

	MaxDBConns         int32
	KafkaConsumerGroup string
	TopicRequestedPE   string
	TopicRequestedCL   string
	TopicConfirmed     string

	OutboxPollInterval   time.Duration
	OutboxBatchSize      int
	ConsumerPollInterval time.Duration

	IdempotencyTTL time.Duration
	EventDedupTTL  time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		RedisURL           string   `yaml:"redis_url"`
		PostgresURL        string   `yaml:"postgres_url"`
		KafkaBrokers       []string `yaml:"kafka_brokers"`
		KafkaConsumerGroup string   `yaml:"kafka_consumer_group"`
		TopicRequestedPE   string   `yaml:"topic_requested_pe"`
		TopicRequestedCL   string   `yaml:"topic_requested_cl"`
		TopicConfirmed     string   `yaml:"topic_confirmed"`
	} `yaml:"dependencies"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:            "appointment-service",
		HTTPPort:             8080,
		GRPCPort:             9090,
		MaxDBConns:           20,
		KafkaConsumerGroup:   "appointment-service",
		TopicRequestedPE:     "appointments.requested.pe",
		TopicRequestedCL:     "appointments.requested.cl",
		TopicConfirmed:       "appointments.confirmed",
		OutboxPollInterval:   2 * time.Second,
		OutboxBatchSize:      100,
		ConsumerPollInterval: 2 * time.Second,
		IdempotencyTTL:       24 * time.Hour,
		EventDedupTTL:        7 * 24 * time.Hour,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaConsumerGroup != "" {
			cfg.KafkaConsumerGroup = f.Dependencies.KafkaConsumerGroup
		}
		if f.Dependencies.TopicRequestedPE != "" {
			cfg.TopicRequestedPE = f.Dependencies.TopicRequestedPE
		}
		if f.Dependencies.TopicRequestedCL != "" {
			cfg.TopicRequestedCL = f.Dependencies.TopicRequestedCL
		}
		if f.Dependencies.TopicConfirmed != "" {
			cfg.TopicConfirmed = f.Dependencies.TopicConfirmed
		}
	}

	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaConsumerGroup = envOrDefault("KAFKA_CONSUMER_GROUP", cfg.KafkaConsumerGroup)
	cfg.TopicRequestedPE = envOrDefault("KAFKA_TOPIC_REQUESTED_PE", cfg.TopicRequestedPE)
	cfg.TopicRequestedCL = envOrDefault("KAFKA_TOPIC_REQUESTED_CL", cfg.TopicRequestedCL)
	cfg.TopicConfirmed = envOrDefault("KAFKA_TOPIC_CONFIRMED", cfg.TopicConfirmed)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.ConsumerPollInterval = time.Duration(envInt("CONSUMER_POLL_SECONDS", int(cfg.ConsumerPollInterval.Seconds()))) * time.Second
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.EventDedupTTL = time.Duration(envInt("EVENT_DEDUP_TTL_HOURS", int(cfg.EventDedupTTL.Hours()))) * time.Hour

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
