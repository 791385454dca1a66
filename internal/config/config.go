// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Notification transports.
const (
	TransportPushbullet = "pushbullet"
	TransportDiscord    = "discord"
	TransportNoOp       = "noop"
)

// Exchange rate sources.
const (
	FXSourceBankOfCanada = "bankofcanada"
	FXSourceFixed        = "fixed"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Refresh       RefreshConfig       `yaml:"refresh"`
	Fetcher       FetcherConfig       `yaml:"fetcher"`
	Notifications NotificationsConfig `yaml:"notifications"`
	FX            FXConfig            `yaml:"fx"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig selects the storage backend. Path is used by sqlite, the
// connection fields by postgres.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite, postgres
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// RefreshConfig controls the refresh cycle and its schedule.
type RefreshConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	RunOnStart  bool          `yaml:"run_on_start"`
	ManualOnly  bool          `yaml:"manual_only"` // disables the scheduler
}

// FetcherConfig defines per-fetch retry, timeout and politeness settings.
type FetcherConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxAttempts  int           `yaml:"max_attempts"`
	BackoffBase  time.Duration `yaml:"backoff_base"`
	BackoffMax   time.Duration `yaml:"backoff_max"`
	MinInterval  time.Duration `yaml:"min_interval"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// NotificationsConfig selects the push transport. The credential itself is
// part of the runtime notification settings, not the file.
type NotificationsConfig struct {
	Transport      string           `yaml:"transport"` // pushbullet, discord, noop
	ThrottleWindow time.Duration    `yaml:"throttle_window"`
	Pushbullet     PushbulletConfig `yaml:"pushbullet"`
	Discord        DiscordConfig    `yaml:"discord"`
}

// PushbulletConfig defines Pushbullet API settings.
type PushbulletConfig struct {
	URL string `yaml:"url"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// FXConfig defines how USD prices are converted to CAD.
type FXConfig struct {
	Source       string        `yaml:"source"` // bankofcanada, fixed
	ValetURL     string        `yaml:"valet_url"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	FallbackRate string        `yaml:"fallback_rate"`
	FixedRate    string        `yaml:"fixed_rate"`
}

// Fallback returns the parsed fallback rate.
func (f *FXConfig) Fallback() decimal.Decimal {
	return decimal.RequireFromString(f.FallbackRate)
}

// Fixed returns the parsed fixed rate.
func (f *FXConfig) Fixed() decimal.Decimal {
	return decimal.RequireFromString(f.FixedRate)
}

// ObservabilityConfig defines OpenTelemetry trace export.
type ObservabilityConfig struct {
	Tracing TracingConfig `yaml:"tracing"`
}

// TracingConfig defines the OTLP gRPC exporter.
type TracingConfig struct {
	Enabled       bool              `yaml:"enabled"`
	Endpoint      string            `yaml:"endpoint"`
	Insecure      bool              `yaml:"insecure"`
	Headers       map[string]string `yaml:"headers"`
	ServiceName   string            `yaml:"service_name"`
	SamplingRatio float64           `yaml:"sampling_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment without overriding ones already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyRefreshDefaults(&cfg.Refresh)
	applyFetcherDefaults(&cfg.Fetcher)
	applyNotificationsDefaults(&cfg.Notifications)
	applyFXDefaults(&cfg.FX)
	applyObservabilityDefaults(&cfg.Observability)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	// A manual refresh runs synchronously inside the request.
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 5 * time.Minute
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	if d.Driver == DriverSQLite && d.Path == "" {
		d.Path = "part-price-tracker.db"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyRefreshDefaults(r *RefreshConfig) {
	if r.Interval == 0 {
		r.Interval = 6 * time.Hour
	}
	if r.Concurrency == 0 {
		r.Concurrency = 10
	}
}

func applyFetcherDefaults(f *FetcherConfig) {
	if f.Timeout == 0 {
		f.Timeout = 10 * time.Second
	}
	if f.MaxAttempts == 0 {
		f.MaxAttempts = 3
	}
	if f.BackoffBase == 0 {
		f.BackoffBase = 500 * time.Millisecond
	}
	if f.BackoffMax == 0 {
		f.BackoffMax = 8 * time.Second
	}
	if f.MinInterval == 0 {
		f.MinInterval = 2 * time.Second
	}
	if f.MaxBodyBytes == 0 {
		f.MaxBodyBytes = 4 << 20
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.Transport == "" {
		n.Transport = TransportPushbullet
	}
	if n.ThrottleWindow == 0 {
		n.ThrottleWindow = 24 * time.Hour
	}
	if n.Pushbullet.URL == "" {
		n.Pushbullet.URL = "https://api.pushbullet.com/v2"
	}
}

func applyFXDefaults(f *FXConfig) {
	if f.Source == "" {
		f.Source = FXSourceBankOfCanada
	}
	if f.ValetURL == "" {
		f.ValetURL = "https://www.bankofcanada.ca/valet/observations/FXUSDCAD/json?recent=1"
	}
	if f.CacheTTL == 0 {
		f.CacheTTL = 24 * time.Hour
	}
	if f.FallbackRate == "" {
		f.FallbackRate = "1.35"
	}
}

func applyObservabilityDefaults(o *ObservabilityConfig) {
	if o.Tracing.ServiceName == "" {
		o.Tracing.ServiceName = "part-price-tracker"
	}
	if o.Tracing.SamplingRatio == 0 {
		o.Tracing.SamplingRatio = 1.0
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	switch cfg.Database.Driver {
	case DriverSQLite:
		// Path is defaulted.
	case DriverPostgres:
		if cfg.Database.Host == "" {
			errs = append(errs, errors.New("database.host is required when driver is postgres"))
		}
		if cfg.Database.Name == "" {
			errs = append(errs, errors.New("database.name is required when driver is postgres"))
		}
		if cfg.Database.User == "" {
			errs = append(errs, errors.New("database.user is required when driver is postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"database.driver must be one of: sqlite, postgres (got %q)", cfg.Database.Driver))
	}

	if cfg.Refresh.Interval < 0 {
		errs = append(errs, errors.New("refresh.interval must be positive"))
	}
	if cfg.Refresh.Concurrency < 0 {
		errs = append(errs, errors.New("refresh.concurrency must be positive"))
	}
	if cfg.Fetcher.MaxAttempts < 0 {
		errs = append(errs, errors.New("fetcher.max_attempts must be positive"))
	}
	if cfg.Fetcher.BackoffMax < cfg.Fetcher.BackoffBase {
		errs = append(errs, errors.New("fetcher.backoff_max must not be less than fetcher.backoff_base"))
	}

	switch cfg.Notifications.Transport {
	case TransportPushbullet, TransportDiscord, TransportNoOp:
	default:
		errs = append(errs, fmt.Errorf(
			"notifications.transport must be one of: pushbullet, discord, noop (got %q)",
			cfg.Notifications.Transport,
		))
	}

	if err := validateRate("fx.fallback_rate", cfg.FX.FallbackRate); err != nil {
		errs = append(errs, err)
	}
	switch cfg.FX.Source {
	case FXSourceBankOfCanada:
	case FXSourceFixed:
		if cfg.FX.FixedRate == "" {
			errs = append(errs, errors.New("fx.fixed_rate is required when source is fixed"))
		} else if err := validateRate("fx.fixed_rate", cfg.FX.FixedRate); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf(
			"fx.source must be one of: bankofcanada, fixed (got %q)", cfg.FX.Source))
	}

	if cfg.Observability.Tracing.SamplingRatio < 0 || cfg.Observability.Tracing.SamplingRatio > 1 {
		errs = append(errs, errors.New("observability.tracing.sampling_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}

func validateRate(field, raw string) error {
	r, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%s must be a decimal number (got %q)", field, raw)
	}
	if !r.IsPositive() {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}
