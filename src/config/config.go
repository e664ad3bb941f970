package config

import (
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
)

type ResolverConfig struct {
	Host            string
	Port            string
	LogLevel        zerolog.Level
	RabbitmqURL     string
	AuditExchange   string
	AuditRoutingKey string
}

// Load reads the resolver configuration from the environment. Only the
// messaging settings are optional; everything else defaults to the standard
// deployment (loopback port 3000).
func Load() ResolverConfig {
	levelName := GetenvDefault("LOG_LEVEL", "info")
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		log.Printf("Unrecognized LOG_LEVEL %q, falling back to info", levelName)
		level = zerolog.InfoLevel
	}

	return ResolverConfig{
		Host:            GetenvDefault("RESOLVER_HOST", "127.0.0.1"),
		Port:            GetenvDefault("RESOLVER_PORT", "3000"),
		LogLevel:        level,
		RabbitmqURL:     os.Getenv("RABBITMQ_URL"),
		AuditExchange:   GetenvDefault("AUDIT_EXCHANGE", "foreign_call.audit"),
		AuditRoutingKey: GetenvDefault("AUDIT_ROUTING_KEY", "foreign_call.resolved"),
	}
}

func (c ResolverConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// MessagingEnabled reports whether the optional RabbitMQ audit trail is
// configured. The resolver core never depends on it.
func (c ResolverConfig) MessagingEnabled() bool {
	return c.RabbitmqURL != ""
}

// MustEnv returns the value of an environment variable or logs a fatal error
// if it is not defined.
func MustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env %s", k)
	}
	return v
}

// GetenvDefault returns the environment variable value if set, or a provided
// default if not.
func GetenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
