package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
	Directory DirectoryConfig
	Audit     AuditConfig
	Kafka     KafkaConfig
	Finance   FinanceConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int  // in minutes
	ConnMaxIdleTime int  // in minutes
	AutoMigrate     bool // Run SQL migrations on server start
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address of the Redis server
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
	TrustedProxies []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool    // Export metrics over OTLP
	LogsEnabled       bool    // Export logs over OTLP through the zap bridge
	// Database tracing options
	DBTraceEnabled    bool          // Enable database query tracing (otelgorm)
	DBLogFullSQL      bool          // Log full SQL statements (dev only, disable in prod for security)
	DBSlowQueryThresh time.Duration // Slow query threshold for warnings (default: 200ms)
}

// Directory lookup modes
const (
	DirectoryModeSimulated = "simulated"
	DirectoryModeHTTP      = "http"
)

// DirectoryConfig holds HR employee directory settings
type DirectoryConfig struct {
	Mode     string        // simulated or http
	BaseURL  string        // Base URL of the HR service (http mode)
	Timeout  time.Duration // Per-lookup timeout
	CacheTTL time.Duration // 0 disables caching
	// Circuit breaker settings
	BreakerMaxRequests      uint32        // Requests allowed while half-open
	BreakerInterval         time.Duration // Closed-state counter reset interval
	BreakerTimeout          time.Duration // Open-state duration before half-open
	BreakerFailureThreshold uint32        // Consecutive failures that open the breaker
}

// Audit sink kinds
const (
	AuditSinkLog = "log"
	AuditSinkS3  = "s3"
)

// AuditConfig holds audit trail settings
type AuditConfig struct {
	Sink            string // log or s3
	Bucket          string
	Endpoint        string // Custom endpoint for S3-compatible stores (MinIO, RustFS)
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	Prefix          string // Object key prefix
}

// KafkaConfig holds lifecycle event forwarding settings
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// FinanceConfig holds the amounts used when opening seller accounts
type FinanceConfig struct {
	CommissionRate decimal.Decimal // External sellers, fraction of each sale
	InternalBonus  decimal.Decimal // Internal sellers, bonus per goal met
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with VENTA_ prefix (e.g., VENTA_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("VENTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	// An explicit 0 turns commission or bonus off
	v.SetDefault("finance.commission_rate", "0.05")
	v.SetDefault("finance.internal_bonus", "500.00")

	commissionRate, err := parseDecimal(v.GetString("finance.commission_rate"))
	if err != nil {
		return nil, fmt.Errorf("finance.commission_rate: %w", err)
	}
	internalBonus, err := parseDecimal(v.GetString("finance.internal_bonus"))
	if err != nil {
		return nil, fmt.Errorf("finance.internal_bonus: %w", err)
	}

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
			TrustedProxies: v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
		Directory: DirectoryConfig{
			Mode:                    v.GetString("directory.mode"),
			BaseURL:                 v.GetString("directory.base_url"),
			Timeout:                 v.GetDuration("directory.timeout"),
			CacheTTL:                v.GetDuration("directory.cache_ttl"),
			BreakerMaxRequests:      v.GetUint32("directory.breaker_max_requests"),
			BreakerInterval:         v.GetDuration("directory.breaker_interval"),
			BreakerTimeout:          v.GetDuration("directory.breaker_timeout"),
			BreakerFailureThreshold: v.GetUint32("directory.breaker_failure_threshold"),
		},
		Audit: AuditConfig{
			Sink:            v.GetString("audit.sink"),
			Bucket:          v.GetString("audit.bucket"),
			Endpoint:        v.GetString("audit.endpoint"),
			Region:          v.GetString("audit.region"),
			AccessKeyID:     v.GetString("audit.access_key_id"),
			SecretAccessKey: v.GetString("audit.secret_access_key"),
			UsePathStyle:    v.GetBool("audit.use_path_style"),
			Prefix:          v.GetString("audit.prefix"),
		},
		Kafka: KafkaConfig{
			Enabled:      v.GetBool("kafka.enabled"),
			Brokers:      v.GetStringSlice("kafka.brokers"),
			Topic:        v.GetString("kafka.topic"),
			WriteTimeout: v.GetDuration("kafka.write_timeout"),
		},
		Finance: FinanceConfig{
			CommissionRate: commissionRate,
			InternalBonus:  internalBonus,
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.TrimSpace(s))
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "venta-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "venta"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// An empty origin list means no cross-origin requests are allowed.

	// Telemetry defaults
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}

	// Directory defaults
	if cfg.Directory.Mode == "" {
		cfg.Directory.Mode = DirectoryModeSimulated
	}
	if cfg.Directory.Timeout == 0 {
		cfg.Directory.Timeout = 3 * time.Second
	}
	if cfg.Directory.BreakerMaxRequests == 0 {
		cfg.Directory.BreakerMaxRequests = 1
	}
	if cfg.Directory.BreakerInterval == 0 {
		cfg.Directory.BreakerInterval = time.Minute
	}
	if cfg.Directory.BreakerTimeout == 0 {
		cfg.Directory.BreakerTimeout = 30 * time.Second
	}
	if cfg.Directory.BreakerFailureThreshold == 0 {
		cfg.Directory.BreakerFailureThreshold = 5
	}

	// Audit defaults
	if cfg.Audit.Sink == "" {
		cfg.Audit.Sink = AuditSinkLog
	}
	if cfg.Audit.Region == "" {
		cfg.Audit.Region = "us-east-1"
	}
	if cfg.Audit.Prefix == "" {
		cfg.Audit.Prefix = "audit/sellers"
	}

	// Kafka defaults
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "seller.lifecycle"
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// Validate connection pool settings
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		// Full SQL in traces would leak seller documents and emails
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production to prevent sensitive data exposure in traces")
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	switch c.Directory.Mode {
	case DirectoryModeSimulated:
	case DirectoryModeHTTP:
		if c.Directory.BaseURL == "" {
			return fmt.Errorf("directory.base_url is required when directory.mode is %q", DirectoryModeHTTP)
		}
		if _, err := url.ParseRequestURI(c.Directory.BaseURL); err != nil {
			return fmt.Errorf("directory.base_url is invalid: %w", err)
		}
	default:
		return fmt.Errorf("directory.mode must be %q or %q, got %q", DirectoryModeSimulated, DirectoryModeHTTP, c.Directory.Mode)
	}
	if c.Directory.CacheTTL < 0 {
		return fmt.Errorf("directory.cache_ttl cannot be negative")
	}

	switch c.Audit.Sink {
	case AuditSinkLog:
	case AuditSinkS3:
		if c.Audit.Bucket == "" {
			return fmt.Errorf("audit.bucket is required when audit.sink is %q", AuditSinkS3)
		}
	default:
		return fmt.Errorf("audit.sink must be %q or %q, got %q", AuditSinkLog, AuditSinkS3, c.Audit.Sink)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	if c.Finance.CommissionRate.IsNegative() || c.Finance.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("finance.commission_rate must be between 0 and 1, got %s", c.Finance.CommissionRate)
	}
	if c.Finance.InternalBonus.IsNegative() {
		return fmt.Errorf("finance.internal_bonus cannot be negative")
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
