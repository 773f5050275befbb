package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string
	AdminToken    string

	// PostgresURL selects durable stores when set; otherwise the engine runs
	// on in-memory stores.
	PostgresURL string

	// RedisURL selects the Redis-backed match result store when set.
	RedisURL string

	// KafkaBrokers and KafkaAuditTopic enable the audit outbox relay.
	KafkaBrokers    []string
	KafkaAuditTopic string

	// MaxScore bounds accepted exam scores (inclusive upper bound, lower is 0).
	MaxScore int

	// CycleYear is the admission cycle used when score pushes omit the year.
	CycleYear int

	// InstitutionPriority orders institutions for candidates competing in the
	// shared pool. Institutions not listed rank after listed ones, in
	// lexicographic order, keeping matching deterministic without config.
	InstitutionPriority []string
}

// AuditRelayInterval is how often the outbox relay drains to Kafka.
var AuditRelayInterval = 5 * time.Second

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("EDUMATCH_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	adminToken := os.Getenv("ADMIN_TOKEN")
	if adminToken == "" {
		adminToken = "dev-admin-token"
	}

	maxScore := envInt("EDUMATCH_MAX_SCORE", 100)
	cycleYear := envInt("EDUMATCH_CYCLE_YEAR", time.Now().Year())

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = strings.Split(v, ",")
	}
	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "edumatch.audit"
	}

	var priority []string
	if v := os.Getenv("EDUMATCH_INSTITUTION_PRIORITY"); v != "" {
		priority = strings.Split(v, ",")
	}

	return Server{
		Addr:                addr,
		JWTSigningKey:       jwtSigningKey,
		AdminToken:          adminToken,
		PostgresURL:         os.Getenv("POSTGRES_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		KafkaBrokers:        brokers,
		KafkaAuditTopic:     topic,
		MaxScore:            maxScore,
		CycleYear:           cycleYear,
		InstitutionPriority: priority,
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
