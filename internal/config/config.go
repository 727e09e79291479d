package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
// Precedence: environment, then YAML file, then defaults.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Line      LineConfig      `yaml:"line"`
	Market    MarketConfig    `yaml:"market"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Reply     ReplyConfig     `yaml:"reply"`
	KeepAlive KeepAliveConfig `yaml:"keepalive"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port" envconfig:"PORT" validate:"gte=1,lte=65535"`
}

type LineConfig struct {
	ChannelAccessToken string `yaml:"channel_access_token" envconfig:"LINE_CHANNEL_ACCESS_TOKEN"`
	ChannelSecret      string `yaml:"channel_secret" envconfig:"LINE_CHANNEL_SECRET"`
}

type MarketConfig struct {
	Timezone string `yaml:"timezone" envconfig:"MARKET_TIMEZONE" validate:"required,timezone"`
	Open     string `yaml:"open" envconfig:"MARKET_OPEN" validate:"required,datetime=15:04"`
	Close    string `yaml:"close" envconfig:"MARKET_CLOSE" validate:"required,datetime=15:04"`
}

type FetchConfig struct {
	Provider          string        `yaml:"provider" envconfig:"FETCH_PROVIDER" validate:"oneof=yahoo rest mock"`
	BaseURL           string        `yaml:"base_url" envconfig:"FETCH_BASE_URL" validate:"omitempty,url"`
	APIKey            string        `yaml:"api_key" envconfig:"FETCH_API_KEY"`
	Proxy             string        `yaml:"proxy" envconfig:"HTTPS_PROXY" validate:"omitempty,url"`
	Retries           int           `yaml:"retries" envconfig:"FETCH_RETRIES" validate:"gte=1,lte=10"`
	RequestsPerMinute int           `yaml:"requests_per_minute" envconfig:"FETCH_REQUESTS_PER_MINUTE" validate:"gte=0"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"FETCH_TIMEOUT" validate:"gt=0"`
	MockPrice         float64       `yaml:"mock_price" envconfig:"FETCH_MOCK_PRICE" validate:"gte=0"`
}

type AnalysisConfig struct {
	SupportPolicy  string `yaml:"support_policy" envconfig:"SUPPORT_POLICY" validate:"oneof=recent bullish"`
	MaxConcurrency int    `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" validate:"gte=1,lte=32"`
}

type ReplyConfig struct {
	// LINE caps a text message at 5000 characters; the truncation marker needs room.
	MaxRunes int `yaml:"max_runes" envconfig:"REPLY_MAX_RUNES" validate:"gte=1,lte=4980"`
}

type KeepAliveConfig struct {
	URL  string `yaml:"url" envconfig:"KEEPALIVE_URL" validate:"omitempty,url"`
	Cron string `yaml:"cron" envconfig:"KEEPALIVE_CRON"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	Env   string `yaml:"env" envconfig:"APP_ENV" validate:"oneof=development production"`
	File  string `yaml:"file" envconfig:"LOG_FILE"`
}

// Load reads config from a YAML file, then .env and environment overrides, then applies defaults.
// A missing file is not an error.
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

	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 10000
	}
	if c.Market.Timezone == "" {
		c.Market.Timezone = "Asia/Taipei"
	}
	if c.Market.Open == "" {
		c.Market.Open = "09:00"
	}
	if c.Market.Close == "" {
		c.Market.Close = "13:30"
	}
	if c.Fetch.Provider == "" {
		c.Fetch.Provider = "yahoo"
	}
	if c.Fetch.BaseURL == "" && c.Fetch.Provider == "yahoo" {
		c.Fetch.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Fetch.Retries == 0 {
		c.Fetch.Retries = 3
	}
	if c.Fetch.RequestsPerMinute == 0 {
		c.Fetch.RequestsPerMinute = 60
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Analysis.SupportPolicy == "" {
		c.Analysis.SupportPolicy = "recent"
	}
	if c.Analysis.MaxConcurrency == 0 {
		c.Analysis.MaxConcurrency = 4
	}
	if c.Reply.MaxRunes == 0 {
		c.Reply.MaxRunes = 4900
	}
	if c.KeepAlive.Cron == "" {
		c.KeepAlive.Cron = "@every 10m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
}

// Validate checks field constraints. Missing LINE credentials are reported by Warnings instead.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Fetch.Provider != "mock" && c.Fetch.BaseURL == "" {
		return fmt.Errorf("invalid config: fetch.base_url is required for provider %q", c.Fetch.Provider)
	}
	if c.Market.Open >= c.Market.Close {
		return fmt.Errorf("invalid config: market.open %s must be before market.close %s", c.Market.Open, c.Market.Close)
	}
	return nil
}

// Warnings lists non-fatal problems. The service still starts, but cannot verify or answer webhooks.
func (c *Config) Warnings() []string {
	var w []string
	if c.Line.ChannelAccessToken == "" {
		w = append(w, "LINE_CHANNEL_ACCESS_TOKEN is not set: replies are disabled")
	}
	if c.Line.ChannelSecret == "" {
		w = append(w, "LINE_CHANNEL_SECRET is not set: webhook signatures cannot be verified")
	}
	return w
}
