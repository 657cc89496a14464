package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Providers struct {
		FREDBase      string `yaml:"fred_base"`
		FREDAPIKey    string `yaml:"fred_api_key"`
		CoinGeckoBase string `yaml:"coingecko_base"`
		SoSoValueURL  string `yaml:"sosovalue_url"`
		FearGreedBase string `yaml:"feargreed_base"`
		YahooBase     string `yaml:"yahoo_base"`
	} `yaml:"providers"`
	Store struct {
		DataFile string `yaml:"data_file"`
	} `yaml:"store"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		UpdateCron string `yaml:"update_cron"`
	} `yaml:"schedule"`
	LookbackDays int    `yaml:"lookback_days"`
	Proxy        string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is fine; every field has a default
// except the FRED API key, which stays optional.
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

	// Environment variable overrides
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.Providers.FREDAPIKey = v
	}
	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Store.DataFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_UPDATE"); v != "" {
		cfg.Schedule.UpdateCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.LookbackDays = days
		}
	}

	// Defaults
	if cfg.Providers.FREDBase == "" {
		cfg.Providers.FREDBase = "https://api.stlouisfed.org/fred/series/observations"
	}
	if cfg.Providers.CoinGeckoBase == "" {
		cfg.Providers.CoinGeckoBase = "https://api.coingecko.com/api/v3"
	}
	if cfg.Providers.SoSoValueURL == "" {
		cfg.Providers.SoSoValueURL = "https://api.sosovalue.com/data/v1/etf/spotBTC?limit=40"
	}
	if cfg.Providers.FearGreedBase == "" {
		cfg.Providers.FearGreedBase = "https://api.alternative.me"
	}
	if cfg.Providers.YahooBase == "" {
		cfg.Providers.YahooBase = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if cfg.Store.DataFile == "" {
		cfg.Store.DataFile = "data.json"
	}
	if cfg.Schedule.UpdateCron == "" {
		cfg.Schedule.UpdateCron = "0 30 8 * * *"
	}
	if cfg.LookbackDays == 0 {
		cfg.LookbackDays = 800
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Store.DataFile == "" {
		return fmt.Errorf("store.data_file is required")
	}
	if c.Providers.FREDBase == "" {
		return fmt.Errorf("providers.fred_base is required")
	}
	if c.Providers.CoinGeckoBase == "" {
		return fmt.Errorf("providers.coingecko_base is required")
	}
	if c.LookbackDays < 366 {
		return fmt.Errorf("lookback_days must cover at least a year, got %d", c.LookbackDays)
	}
	return nil
}
