package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Cache struct {
		Type          string        `yaml:"type"` // memory, redis, layered
		TTL           time.Duration `yaml:"ttl"`
		BucketMinutes int           `yaml:"bucket_minutes"`
		MemoryMaxSize int           `yaml:"memory_max_size"`
		Redis         struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	News struct {
		AlphaVantage struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"alphavantage"`
		NewsAPI struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"newsapi"`
		Timeout      time.Duration `yaml:"timeout"`
		DefaultLimit int           `yaml:"default_limit"`
	} `yaml:"news"`
	Social struct {
		Reddit struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			BaseURL      string `yaml:"base_url"`
			AuthURL      string `yaml:"auth_url"`
			UserAgent    string `yaml:"user_agent"`
		} `yaml:"reddit"`
		Subreddits   []string      `yaml:"subreddits"`
		Timeout      time.Duration `yaml:"timeout"`
		DefaultLimit int           `yaml:"default_limit"`
	} `yaml:"social"`
	Scorer struct {
		URL      string        `yaml:"url"`
		APIKey   string        `yaml:"api_key"`
		Model    string        `yaml:"model"`
		Timeout  time.Duration `yaml:"timeout"`
		MaxChars int           `yaml:"max_chars"`
		MinChars int           `yaml:"min_chars"`
	} `yaml:"scorer"`
	Trending struct {
		DefaultThreshold float64 `yaml:"default_threshold"`
	} `yaml:"trending"`
	Watchlist struct {
		Enabled  bool          `yaml:"enabled"`
		Tickers  []string      `yaml:"tickers"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"watchlist"`
	Events struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		ErrorTopic   string        `yaml:"error_topic"`
		Compression  string        `yaml:"compression"`
		RequiredAcks int           `yaml:"required_acks"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"events"`
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

// LoadWithEnv loads config from YAML and overrides secrets with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.News.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.NewsAPI.APIKey = v
	}
	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		c.Social.Reddit.ClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		c.Social.Reddit.ClientSecret = v
	}
	if v := os.Getenv("SCORER_API_KEY"); v != "" {
		c.Scorer.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		c.Watchlist.Tickers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Cache.Type == "" {
		c.Cache.Type = "memory"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 30 * time.Minute
	}
	if c.Cache.BucketMinutes <= 0 {
		c.Cache.BucketMinutes = 1
	}
	if c.News.Timeout <= 0 {
		c.News.Timeout = 10 * time.Second
	}
	if c.News.DefaultLimit <= 0 {
		c.News.DefaultLimit = 10
	}
	if c.Social.Timeout <= 0 {
		c.Social.Timeout = 10 * time.Second
	}
	if c.Social.DefaultLimit <= 0 {
		c.Social.DefaultLimit = 10
	}
	if c.Scorer.Timeout <= 0 {
		c.Scorer.Timeout = 10 * time.Second
	}
	if c.Scorer.MaxChars <= 0 {
		c.Scorer.MaxChars = 500
	}
	if c.Scorer.MinChars <= 0 {
		c.Scorer.MinChars = 10
	}
	if c.Trending.DefaultThreshold <= 0 {
		c.Trending.DefaultThreshold = 0.3
	}
	if c.Watchlist.Interval <= 0 {
		c.Watchlist.Interval = 15 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Type {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.type must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Type)
	}
	if c.Events.Enabled && len(c.Events.Brokers) == 0 {
		return fmt.Errorf("events.brokers is required when events.enabled")
	}
	if c.Events.Enabled && c.Events.Topic == "" {
		return fmt.Errorf("events.topic is required when events.enabled")
	}
	if c.Watchlist.Enabled && len(c.Watchlist.Tickers) == 0 {
		return fmt.Errorf("watchlist.tickers cannot be empty when watchlist.enabled")
	}
	return nil
}
