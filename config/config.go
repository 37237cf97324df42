package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`
	RateLimit struct {
		Requests int           `yaml:"requests"`
		Window   time.Duration `yaml:"window"`
	} `yaml:"rate_limit"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Simulation struct {
		// MinPaymentFloor is the smallest minimum payment on an open card.
		// Unset means the default of 10; an explicit 0 disables the floor.
		MinPaymentFloor *float64 `yaml:"min_payment_floor"`
		MaxMonths       int      `yaml:"max_months"`
	} `yaml:"simulation"`
	Cache struct {
		// TTL applies to both Redis and the in-memory cache.
		TTL time.Duration `yaml:"ttl"`
		// MaxEntries bounds the in-memory cache only.
		MaxEntries int `yaml:"max_entries"`
	} `yaml:"cache"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Database struct {
		SQLitePath   string `yaml:"sqlite_path"`
		PostgresDSN  string `yaml:"postgres_dsn"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`
	Retention struct {
		Days      int    `yaml:"days"`
		PruneCron string `yaml:"prune_cron"`
	} `yaml:"retention"`
	Insight struct {
		APIKey  string        `yaml:"api_key"`
		APIURL  string        `yaml:"api_url"`
		Model   string        `yaml:"model"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"insight"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Database.PostgresDSN = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("MIN_PAYMENT_FLOOR"); v != "" {
		floor, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MIN_PAYMENT_FLOOR: %w", err)
		}
		c.Simulation.MinPaymentFloor = &floor
	}
	if v := os.Getenv("MAX_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_MONTHS: %w", err)
		}
		c.Simulation.MaxMonths = months
	}
	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RETENTION_DAYS: %w", err)
		}
		c.Retention.Days = days
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 10
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Simulation.MinPaymentFloor == nil {
		floor := 10.0
		c.Simulation.MinPaymentFloor = &floor
	}
	if c.Simulation.MaxMonths == 0 {
		c.Simulation.MaxMonths = 1200
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 128
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/card_payoff.db"
	}
	if c.Retention.PruneCron == "" {
		c.Retention.PruneCron = "0 0 3 * * *"
	}
	if c.Insight.Model == "" {
		c.Insight.Model = "gpt-4o-mini"
	}
	if c.Insight.Timeout == 0 {
		c.Insight.Timeout = 10 * time.Second
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate_limit.requests must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Simulation.MinPaymentFloor != nil && *c.Simulation.MinPaymentFloor < 0 {
		return fmt.Errorf("simulation.min_payment_floor must not be negative")
	}
	if c.Simulation.MaxMonths <= 0 {
		return fmt.Errorf("simulation.max_months must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive")
	}
	if c.Retention.Days < 0 {
		return fmt.Errorf("retention.days must not be negative")
	}
	// The insight call runs inside a request; it has to give up in time for
	// the fallback text to be written.
	if c.Insight.Timeout <= 0 || c.Insight.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("insight.timeout (%s) must be positive and shorter than server.write_timeout (%s)",
			c.Insight.Timeout, c.Server.WriteTimeout)
	}
	return nil
}

// SlogLevel parses log.level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// RetentionPeriod returns how long run records are kept; zero keeps them
// forever.
func (c *Config) RetentionPeriod() time.Duration {
	return time.Duration(c.Retention.Days) * 24 * time.Hour
}
