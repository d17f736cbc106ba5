package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"MarketPanel/internal/collector"
	"MarketPanel/internal/logger"
	"MarketPanel/internal/model"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider    string                 `yaml:"provider"` // yahoo or mock
		BaseURL     string                 `yaml:"base_url"`
		StartDate   string                 `yaml:"start_date"`
		Candidates  []model.FetchCandidate `yaml:"candidates"`
		Timeout     time.Duration          `yaml:"timeout"`
		MinInterval time.Duration          `yaml:"min_interval"`
		AutoAdjust  *bool                  `yaml:"auto_adjust"`
		Breaker     struct {
			Enabled bool                     `yaml:"enabled"`
			Options collector.BreakerOptions `yaml:",inline"`
		} `yaml:"breaker"`
	} `yaml:"data_source"`
	Cache struct {
		TTL time.Duration `yaml:"ttl"` // zero keeps results for the process lifetime
	} `yaml:"cache"`
	Chart struct {
		EntryDate        string             `yaml:"entry_date"`
		EntryLabel       string             `yaml:"entry_label"`
		ReferenceLabel   string             `yaml:"reference_label"`
		ReferenceValues  map[string]float64 `yaml:"reference_values"` // keyed by candidate label
		DefaultReference float64            `yaml:"default_reference"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log   logger.Config `yaml:"log"`
	Proxy string        `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("PANEL_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("PANEL_START_DATE"); v != "" {
		cfg.DataSource.StartDate = v
	}
	if v := os.Getenv("PANEL_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("PANEL_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTL = ttl
	}
	if v := os.Getenv("PANEL_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	ds := &cfg.DataSource
	if ds.Provider == "" {
		ds.Provider = "yahoo"
	}
	if ds.StartDate == "" {
		ds.StartDate = "2024-01-01"
	}
	if len(ds.Candidates) == 0 {
		ds.Candidates = []model.FetchCandidate{
			{Symbol: "^KS11", Label: "KOSPI"},
			{Symbol: "SPY", Label: "SPY"},
		}
	}
	if ds.Timeout == 0 {
		ds.Timeout = 15 * time.Second
	}
	if ds.AutoAdjust == nil {
		on := true
		ds.AutoAdjust = &on
	}
	if ds.Breaker.Options.Timeout == 0 {
		ds.Breaker.Options.Timeout = time.Minute
	}

	ch := &cfg.Chart
	if ch.EntryDate == "" {
		ch.EntryDate = "2025-08-22"
	}
	if ch.EntryLabel == "" {
		ch.EntryLabel = "Aug 22 Case Study Entry"
	}
	if ch.ReferenceLabel == "" {
		ch.ReferenceLabel = "9.31 PER Equilibrium (Approx.)"
	}
	if ch.ReferenceValues == nil {
		ch.ReferenceValues = map[string]float64{"KOSPI": 3100, "SPY": 5800}
	}
	if ch.DefaultReference == 0 {
		ch.DefaultReference = 3100
	}

	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */30 * * * 1-5"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks that all required fields are set and parseable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo or mock, got %q", c.DataSource.Provider)
	}
	if _, err := c.StartDate(); err != nil {
		return fmt.Errorf("data_source.start_date: %w", err)
	}
	if len(c.DataSource.Candidates) == 0 {
		return fmt.Errorf("data_source.candidates must not be empty")
	}
	seen := make(map[string]bool)
	for i, cand := range c.DataSource.Candidates {
		if strings.TrimSpace(cand.Symbol) == "" {
			return fmt.Errorf("data_source.candidates[%d].symbol is required", i)
		}
		if cand.Label == "" {
			return fmt.Errorf("data_source.candidates[%d].label is required", i)
		}
		if seen[cand.Label] {
			return fmt.Errorf("data_source.candidates: duplicate label %q", cand.Label)
		}
		seen[cand.Label] = true
	}
	if c.DataSource.Timeout < 0 {
		return fmt.Errorf("data_source.timeout must not be negative")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if _, err := c.EntryDate(); err != nil {
		return fmt.Errorf("chart.entry_date: %w", err)
	}
	if _, err := logrus.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// StartDate returns the parsed inclusive start date.
func (c *Config) StartDate() (time.Time, error) {
	return model.ParseDate(c.DataSource.StartDate)
}

// EntryDate returns the parsed entry marker date.
func (c *Config) EntryDate() (time.Time, error) {
	return model.ParseDate(c.Chart.EntryDate)
}
