package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
)

type SourcesConfig struct {
	TrendingRSSURL   string   `json:"trending_rss_url"`
	NewsFeeds        []string `json:"news_feeds"`
	StackExchangeURL string   `json:"stackexchange_url"`
	PageviewsURL     string   `json:"pageviews_url"`
	UserAgent        string   `json:"user_agent"`
	RequestsPerSec   float64  `json:"requests_per_sec"`
}

type Config struct {
	Server struct {
		Host          string `json:"host"`
		Port          int    `json:"port"`
		SessionSecret string `json:"session_secret"`
	} `json:"server"`
	Database struct {
		URL string `json:"url"`
	} `json:"database"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Export struct {
		Dir string `json:"dir"`
	} `json:"export"`
	Sources  SourcesConfig `json:"sources"`
	Trending struct {
		RefreshHours int `json:"refresh_hours"`
	} `json:"trending"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton). Environment
// variables DATABASE_URL, SESSION_SECRET, REDIS_ADDR and PORT override
// the file so the app can run on hosted platforms without editing it.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		c := defaults()
		if raw, err := os.ReadFile(path); err == nil {
			if err := json.Unmarshal(raw, c); err != nil {
				cfgErr = fmt.Errorf("invalid config format: %w", err)
				return
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		applyEnv(c)
		if c.Server.SessionSecret == "" {
			cfgErr = errors.New("session_secret must be set in config or SESSION_SECRET")
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

func defaults() *Config {
	c := &Config{}
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 5000
	c.Redis.Addr = "localhost:6379"
	c.Export.Dir = os.TempDir()
	c.Sources.TrendingRSSURL = "https://trends.google.com/trending/rss?geo=US"
	c.Sources.NewsFeeds = []string{
		"https://feeds.bbci.co.uk/news/rss.xml",
		"https://rss.cnn.com/rss/cnn_topstories.rss",
	}
	c.Sources.StackExchangeURL = "https://api.stackexchange.com/2.3/search"
	c.Sources.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) KtrendBot/1.0"
	c.Sources.RequestsPerSec = 2
	c.Trending.RefreshHours = 6
	return c
}

func applyEnv(c *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Server.SessionSecret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
