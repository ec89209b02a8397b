package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidDuration is wrapped when a duration variable is not finite or
// does not fit in a time.Duration.
var ErrInvalidDuration = errors.New("duration out of range")

// Config aggregates runtime configuration for the intake agent.
type Config struct {
	Intake   IntakeConfig
	FollowUp FollowUpConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	SMTP     SMTPConfig
	Logger   LoggerConfig
}

// IntakeConfig controls the simulated submissions and the console script.
type IntakeConfig struct {
	LeadLogPath     string
	LeadCount       int
	SubmissionDelay time.Duration
	MessageDelay    time.Duration
	IdleNotice      time.Duration
}

// FollowUpConfig controls the background sweep.
type FollowUpConfig struct {
	Threshold time.Duration
	Interval  time.Duration
}

// HTTPConfig enables the intake endpoint when Addr is set.
type HTTPConfig struct {
	Addr string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
	Output string
}

// Load reads configuration from the environment (and .env when present),
// applying defaults where a variable is unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	leadCount := getEnvAsInt("LEAD_COUNT", 5, &errs)
	submissionDelay := getEnvAsDuration("SUBMISSION_DELAY", 2*time.Second, &errs)
	messageDelay := getEnvAsDuration("MESSAGE_DELAY", 500*time.Millisecond, &errs)
	idleNotice := getEnvAsDuration("QUEUE_IDLE_NOTICE", 5*time.Second, &errs)
	threshold := getEnvAsDuration("FOLLOW_UP_THRESHOLD", 10*time.Second, &errs)
	interval := getEnvAsDuration("FOLLOW_UP_INTERVAL", 10*time.Second, &errs)
	redisDB := getEnvAsInt("REDIS_DB", 0, &errs)
	smtpPort := getEnvAsInt("SMTP_PORT", 587, &errs)
	if len(errs) > 0 {
		return nil, errs[0]
	}

	cfg := &Config{
		Intake: IntakeConfig{
			LeadLogPath:     getEnv("LEAD_LOG_PATH", "leads.csv"),
			LeadCount:       leadCount,
			SubmissionDelay: submissionDelay,
			MessageDelay:    messageDelay,
			IdleNotice:      idleNotice,
		},
		FollowUp: FollowUpConfig{
			Threshold: threshold,
			Interval:  interval,
		},
		HTTP: HTTPConfig{
			Addr: os.Getenv("HTTP_ADDR"),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		RabbitMQ: RabbitMQConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     getEnv("SMTP_FROM", "no-reply@lead-intake.local"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Output: getEnv("LOG_OUTPUT", "logs/lead-intake.log"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Intake.LeadLogPath == "" {
		return fmt.Errorf("config: LEAD_LOG_PATH is required")
	}
	if c.Intake.LeadCount < 0 {
		return fmt.Errorf("config: LEAD_COUNT must be >= 0")
	}
	if c.FollowUp.Interval <= 0 {
		return fmt.Errorf("config: FOLLOW_UP_INTERVAL must be positive")
	}
	if c.FollowUp.Threshold < 0 {
		return fmt.Errorf("config: FOLLOW_UP_THRESHOLD must be >= 0")
	}
	return nil
}

// Enabled reports whether outbound follow-up email is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int, errs *[]error) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}

// getEnvAsDuration accepts Go durations ("1500ms") or bare seconds ("10").
func getEnvAsDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if secs, err := strconv.ParseFloat(val, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		ns := secs * float64(time.Second)
		if err != nil || math.IsNaN(ns) || ns >= math.MaxInt64 || ns < math.MinInt64 {
			*errs = append(*errs, fmt.Errorf("config: invalid %s %q: %w", key, val, ErrInvalidDuration))
			return fallback
		}
		return time.Duration(ns)
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("config: invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}
