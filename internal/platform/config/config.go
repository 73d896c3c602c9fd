// Package config resolves runtime configuration: built-in defaults, then an
// optional YAML file named by PORTAL_CONFIG, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	liststr "portal/pkg/platform/strings"
)

// Config is the full runtime configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	Auth     Auth           `yaml:"auth"`
	WPCOM    WPCOM          `yaml:"wpcom"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Plans    Plans          `yaml:"plans"`
	Log      Log            `yaml:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Auth configures partner API tokens.
type Auth struct {
	JWTSigningKey string        `yaml:"jwt_signing_key"`
	Issuer        string        `yaml:"issuer"`
	Audience      string        `yaml:"audience"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

// WPCOM configures the upstream licensing API.
type WPCOM struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// RedisConfig configures the notice feed. An empty URL disables Redis.
type RedisConfig struct {
	URL            string        `yaml:"url"`
	PoolSize       int           `yaml:"pool_size"`
	MinIdleConns   int           `yaml:"min_idle_conns"`
	DialTimeout    time.Duration `yaml:"dial_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	NoticeKey      string        `yaml:"notice_key"`
	NoticeCapacity int           `yaml:"notice_capacity"`
}

// PostgresConfig configures the partner key repository. An empty DSN keeps
// keys in memory.
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// KafkaConfig configures the audit stream. No brokers keeps audit in memory.
type KafkaConfig struct {
	Brokers     []string `yaml:"brokers"`
	AuditTopic  string   `yaml:"audit_topic"`
	AuditBuffer int      `yaml:"audit_buffer"`
}

// Plans points at the static plans catalog. Empty disables loading.
type Plans struct {
	CatalogPath string `yaml:"catalog_path"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const devSigningKey = "dev-secret-key-change-in-production"

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Auth: Auth{
			JWTSigningKey: devSigningKey,
			Issuer:        "partner-portal",
			Audience:      "partner-portal",
			TokenTTL:      time.Hour,
		},
		WPCOM: WPCOM{
			BaseURL: "https://public-api.wordpress.com",
			Timeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			PoolSize:       10,
			MinIdleConns:   2,
			DialTimeout:    5 * time.Second,
			ReadTimeout:    3 * time.Second,
			WriteTimeout:   3 * time.Second,
			NoticeKey:      "portal:notices",
			NoticeCapacity: 100,
		},
		Postgres: PostgresConfig{MaxOpenConns: 10},
		Kafka: KafkaConfig{
			AuditTopic:  "portal.audit",
			AuditBuffer: 256,
		},
		Log: Log{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from defaults, PORTAL_CONFIG and the
// environment, then validates it.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("PORTAL_CONFIG"); path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile is Load with an explicit file and no environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Kafka.Brokers = liststr.DedupeAndTrim(cfg.Kafka.Brokers)
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("auth.jwt_signing_key is required"))
	}
	if c.WPCOM.BaseURL == "" {
		errs = append(errs, errors.New("wpcom.base_url is required"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.AuditTopic == "" {
		errs = append(errs, errors.New("kafka.audit_topic is required when brokers are set"))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or text", c.Log.Format))
	}
	return errors.Join(errs...)
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c Config) UsesDevSigningKey() bool {
	return c.Auth.JWTSigningKey == devSigningKey
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("PORTAL_ADDR", &cfg.Server.Addr)
	str("JWT_SIGNING_KEY", &cfg.Auth.JWTSigningKey)
	str("JWT_ISSUER", &cfg.Auth.Issuer)
	str("JWT_AUDIENCE", &cfg.Auth.Audience)
	dur("JWT_TOKEN_TTL", &cfg.Auth.TokenTTL)
	str("WPCOM_API_BASE_URL", &cfg.WPCOM.BaseURL)
	str("WPCOM_API_TOKEN", &cfg.WPCOM.Token)
	dur("WPCOM_TIMEOUT", &cfg.WPCOM.Timeout)
	str("REDIS_URL", &cfg.Redis.URL)
	num("REDIS_POOL_SIZE", &cfg.Redis.PoolSize)
	str("DATABASE_URL", &cfg.Postgres.DSN)
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.Kafka.Brokers = liststr.SplitList(v)
	}
	str("KAFKA_AUDIT_TOPIC", &cfg.Kafka.AuditTopic)
	num("AUDIT_BUFFER", &cfg.Kafka.AuditBuffer)
	str("PLANS_CATALOG", &cfg.Plans.CatalogPath)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	return errors.Join(errs...)
}
