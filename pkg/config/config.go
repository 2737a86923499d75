package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Thresholds are the configured bounds the tile computer and signal rules
// compare against. Yield bounds are decimal fractions (0.045 = 4.5%);
// spread and curve bounds are basis points. Read-only after load.
type Thresholds struct {
	Y10GreenMax       float64 `yaml:"y10_green_max"`
	Y10YellowMax      float64 `yaml:"y10_yellow_max"`
	TIPSGreenMax      float64 `yaml:"tips_green_max"`
	TIPSYellowMax     float64 `yaml:"tips_yellow_max"`
	TP10GreenMax      float64 `yaml:"tp10_green_max"`
	TP10YellowMax     float64 `yaml:"tp10_yellow_max"`
	DXYGreenMax       float64 `yaml:"dxy_green_max"`
	DXYYellowMax      float64 `yaml:"dxy_yellow_max"`
	PMIGreenMin       float64 `yaml:"pmi_green_min"`
	PMIYellowMin      float64 `yaml:"pmi_yellow_min"`
	HYOASGreenMaxBps  float64 `yaml:"hyoas_green_max_bps"`
	HYOASYellowMaxBps float64 `yaml:"hyoas_yellow_max_bps"`
	CurveGreenMinBps  float64 `yaml:"curve_green_min_bps"`
	CurveYellowMinBps float64 `yaml:"curve_yellow_min_bps"`
	WTIGreenMin       float64 `yaml:"wti_green_min"`
	WTIYellowMin      float64 `yaml:"wti_yellow_min"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Series struct {
		Fred      []string `yaml:"fred"`
		NYFedTP10 bool     `yaml:"nyfed_tp10"`
	} `yaml:"series"`
	Fetch struct {
		Attempts       int           `yaml:"attempts"`
		RetryDelay     time.Duration `yaml:"retry_delay"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxConcurrency int           `yaml:"max_concurrency"`
		CacheTTL       time.Duration `yaml:"cache_ttl"`
	} `yaml:"fetch"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Tiles Thresholds `yaml:"tiles"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SERIES"); v != "" {
		c.Series.Fred = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Fetch.Attempts == 0 {
		c.Fetch.Attempts = 2
	}
	if c.Fetch.RetryDelay == 0 {
		c.Fetch.RetryDelay = time.Second
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.MaxConcurrency == 0 {
		c.Fetch.MaxConcurrency = 4
	}
	if c.Fetch.CacheTTL == 0 {
		c.Fetch.CacheTTL = 15 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if len(c.Series.Fred) == 0 {
		return fmt.Errorf("series.fred cannot be empty")
	}
	if c.Fetch.Attempts < 1 || c.Fetch.Attempts > 3 {
		return fmt.Errorf("fetch.attempts must be 1-3, got %d", c.Fetch.Attempts)
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Host == "" {
		return fmt.Errorf("cache.redis.host is required when redis is enabled")
	}
	return nil
}
