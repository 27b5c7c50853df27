package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/validation"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the demo shells
type Config struct {
	// Sync behaviour
	SyncDelay         time.Duration `yaml:"sync_delay"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	CancelPendingSync bool          `yaml:"cancel_pending_sync"`
	InitialStatus     string        `yaml:"initial_status"`
	Locale            string        `yaml:"locale"`

	// Storage: empty keeps the queue in memory
	QueueDB string `yaml:"queue_db"`

	// Simulated backend
	FetchLatency         time.Duration `yaml:"fetch_latency"`
	DegradedExtraLatency time.Duration `yaml:"degraded_extra_latency"`

	// HTTP shell
	HTTPAddr string `yaml:"http_addr"`

	// Simulator
	ReportFile string `yaml:"report_file"`

	// Logging
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	Logger    *slog.Logger `yaml:"-"`
}

// DefaultConfig returns a configuration with the timings of the original demo page
func DefaultConfig() *Config {
	return &Config{
		SyncDelay:         chaos.DefaultSyncDelay,
		PollInterval:      chaos.DefaultPollInterval,
		CancelPendingSync: true,
		InitialStatus:     chaos.StatusOnline.String(),
		Locale:            chaos.LocaleEN,

		FetchLatency:         300 * time.Millisecond,
		DegradedExtraLatency: 1200 * time.Millisecond,

		HTTPAddr: ":8080",

		LogLevel:  "info",
		LogFormat: "text",

		Logger: slog.Default(),
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Required("HTTPAddr", c.HTTPAddr).
		Required("Locale", c.Locale).
		PositiveDuration("SyncDelay", c.SyncDelay).
		PositiveDuration("PollInterval", c.PollInterval).
		NonNegativeDuration("FetchLatency", c.FetchLatency).
		NonNegativeDuration("DegradedExtraLatency", c.DegradedExtraLatency).
		OneOf("Locale", c.Locale, []string{chaos.LocaleEN, chaos.LocaleVI}).
		OneOf("LogFormat", c.LogFormat, []string{"text", "json"}).
		Custom("LogLevel", func() error {
			_, err := ParseLevel(c.LogLevel)
			return err
		}).
		Custom("InitialStatus", func() error {
			_, err := chaos.ParseStatus(c.InitialStatus)
			return err
		}).
		Err()
}

// Status returns the parsed initial connection status.
func (c *Config) Status() chaos.ConnectionStatus {
	s, err := chaos.ParseStatus(c.InitialStatus)
	if err != nil {
		return chaos.StatusOnline
	}
	return s
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger builds a logger for LogLevel and LogFormat writing to w and stores it in c.Logger.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	c.Logger = slog.New(handler)
	return c.Logger
}
