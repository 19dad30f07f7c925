// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendBadger   = "badger"
	BackendMemory   = "memory"
)

// Diff strategies.
const (
	StrategySet    = "set"
	StrategyCursor = "cursor"
)

const defaultDiffWindow = 30

// Snapshot orderings.
const (
	OrderingBeforeNotify = "before_notify"
	OrderingAfterNotify  = "after_notify"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Marketplace   MarketplaceConfig   `yaml:"marketplace"`
	Diff          DiffConfig          `yaml:"diff"`
	Run           RunConfig           `yaml:"run"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StorageConfig selects and configures the snapshot store.
type StorageConfig struct {
	Backend  string         `yaml:"backend"` // postgres, sqlite, badger, memory
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Badger   BadgerConfig   `yaml:"badger"`
}

// PostgresConfig defines PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s pool_max_conns=%d",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode, d.PoolSize,
	)
}

// SQLiteConfig defines the SQLite database location.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// BadgerConfig defines the Badger key-value directory.
type BadgerConfig struct {
	Dir string `yaml:"dir"`
}

// MarketplaceConfig defines the listing page to scrape.
type MarketplaceConfig struct {
	BaseURL      string              `yaml:"base_url"`
	Category     string              `yaml:"category"`
	Params       map[string][]string `yaml:"params"`
	Timeout      time.Duration       `yaml:"timeout"`
	UserAgent    string              `yaml:"user_agent"`
	BlockedShops []string            `yaml:"blocked_shops"`
}

// DiffConfig selects the change-detection strategy.
type DiffConfig struct {
	Strategy string `yaml:"strategy"` // set, cursor
	Window   *int   `yaml:"window"`   // set strategy only; 0 disables the window
}

// WindowSize returns the configured window, or the default when unset.
func (d DiffConfig) WindowSize() int {
	if d.Window == nil {
		return defaultDiffWindow
	}
	return *d.Window
}

// RunConfig defines orchestrator behavior.
type RunConfig struct {
	SnapshotOrdering string   `yaml:"snapshot_ordering"` // before_notify, after_notify
	Hashtags         []string `yaml:"hashtags"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	AllowPost   bool            `yaml:"allow_post"`
	Concurrency int             `yaml:"concurrency"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Twitter     TwitterConfig   `yaml:"twitter"`
	Discord     DiscordConfig   `yaml:"discord"`
}

// RateLimitConfig defines client-side posting limits.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// TwitterConfig defines X (Twitter) API v2 settings.
type TwitterConfig struct {
	Enabled     bool          `yaml:"enabled"`
	APIURL      string        `yaml:"api_url"`
	AccessToken string        `yaml:"access_token"`
	Timeout     time.Duration `yaml:"timeout"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// ScheduleConfig defines the cron interval for scheduled runs.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// TelemetryConfig defines OpenTelemetry tracing export.
type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expands environment variables, applies
// defaults, and validates the result.
func Parse(data []byte) (*Config, error) {
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
	applyStorageDefaults(&cfg.Storage)
	applyMarketplaceDefaults(&cfg.Marketplace)
	applyDiffDefaults(&cfg.Diff)
	applyRunDefaults(&cfg.Run)
	applyNotificationsDefaults(&cfg.Notifications)
	applyScheduleDefaults(&cfg.Schedule)
	applyTelemetryDefaults(&cfg.Telemetry)
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
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyStorageDefaults(s *StorageConfig) {
	if s.Backend == "" {
		s.Backend = BackendSQLite
	}
	if s.Postgres.Port == 0 {
		s.Postgres.Port = 5432
	}
	if s.Postgres.SSLMode == "" {
		s.Postgres.SSLMode = "disable"
	}
	if s.Postgres.PoolSize == 0 {
		s.Postgres.PoolSize = 4
	}
	if s.SQLite.Path == "" {
		s.SQLite.Path = "./data/notifier.db"
	}
	if s.Badger.Dir == "" {
		s.Badger.Dir = "./data/badger"
	}
}

func applyMarketplaceDefaults(m *MarketplaceConfig) {
	if m.BaseURL == "" {
		m.BaseURL = "https://booth.pm/ja"
	}
	if m.Category == "" {
		m.Category = "3Dモデル"
	}
	if m.Params == nil {
		m.Params = map[string][]string{}
	}
	if len(m.Params["sort"]) == 0 {
		m.Params["sort"] = []string{"new"}
	}
	if m.Timeout == 0 {
		m.Timeout = 30 * time.Second
	}
	if m.UserAgent == "" {
		m.UserAgent = "new-item-notifier/1.0"
	}
}

func applyDiffDefaults(d *DiffConfig) {
	if d.Strategy == "" {
		d.Strategy = StrategySet
	}
	if d.Window == nil {
		w := defaultDiffWindow
		d.Window = &w
	}
}

func applyRunDefaults(r *RunConfig) {
	if r.SnapshotOrdering == "" {
		r.SnapshotOrdering = OrderingBeforeNotify
	}
}

func applyNotificationsDefaults(n *NotificationsConfig) {
	if n.Concurrency == 0 {
		n.Concurrency = 4
	}
	if n.RateLimit.PerSecond == 0 {
		n.RateLimit.PerSecond = 1.0
	}
	if n.RateLimit.Burst == 0 {
		n.RateLimit.Burst = 5
	}
	if n.RateLimit.DailyLimit == 0 {
		n.RateLimit.DailyLimit = 17
	}
	if n.Twitter.APIURL == "" {
		n.Twitter.APIURL = "https://api.x.com"
	}
	if n.Twitter.Timeout == 0 {
		n.Twitter.Timeout = 15 * time.Second
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.Interval == 0 {
		s.Interval = 10 * time.Minute
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "new-item-notifier"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1
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

	switch cfg.Storage.Backend {
	case BackendPostgres:
		if cfg.Storage.Postgres.Host == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.host is required when backend is postgres"))
		}
		if cfg.Storage.Postgres.Name == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.name is required when backend is postgres"))
		}
		if cfg.Storage.Postgres.User == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.user is required when backend is postgres"))
		}
	case BackendSQLite, BackendBadger, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf(
			"storage.backend must be one of: postgres, sqlite, badger, memory (got %q)",
			cfg.Storage.Backend,
		))
	}

	switch cfg.Diff.Strategy {
	case StrategySet, StrategyCursor:
	default:
		errs = append(errs, fmt.Errorf(
			"diff.strategy must be one of: set, cursor (got %q)", cfg.Diff.Strategy,
		))
	}
	if cfg.Diff.WindowSize() < 0 {
		errs = append(errs, fmt.Errorf("diff.window must be >= 0 (got %d)", cfg.Diff.WindowSize()))
	}

	switch cfg.Run.SnapshotOrdering {
	case OrderingBeforeNotify, OrderingAfterNotify:
	default:
		errs = append(errs, fmt.Errorf(
			"run.snapshot_ordering must be one of: before_notify, after_notify (got %q)",
			cfg.Run.SnapshotOrdering,
		))
	}

	if cfg.Notifications.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("notifications.concurrency must be >= 1"))
	}
	if cfg.Notifications.Twitter.Enabled && cfg.Notifications.Twitter.AccessToken == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.twitter.access_token is required when twitter is enabled",
		))
	}
	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf(
			"notifications.discord.webhook_url is required when discord is enabled",
		))
	}
	if cfg.Notifications.Twitter.Enabled && cfg.Notifications.Discord.Enabled {
		errs = append(errs, fmt.Errorf("only one of notifications.twitter and notifications.discord may be enabled"))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, fmt.Errorf("telemetry.endpoint is required when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
