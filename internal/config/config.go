package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host  string `yaml:"host"`
		Port  int    `yaml:"port"`
		Debug bool   `yaml:"debug"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Cache struct {
		ExpireDays int `yaml:"expire_days"`
	} `yaml:"cache"`

	Sonarr struct {
		URL    string `yaml:"url"`
		APIKey string `yaml:"api_key"`
	} `yaml:"sonarr"`

	Bangumi struct {
		UserID string `yaml:"user_id"`
		// Overridable for self-hosted mirrors
		BaseURL string `yaml:"base_url"`
	} `yaml:"bangumi"`

	Log struct {
		Level string `yaml:"level"` // 'debug', 'info', 'warn' or 'error'
	} `yaml:"log"`

	Refresh struct {
		Interval string `yaml:"interval"` // e.g. '30m', empty disables the warm refresh
	} `yaml:"refresh"`

	Notifications struct {
		PushbulletAPIKey string `yaml:"pushbullet_api_key"`
	} `yaml:"notifications"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Debug = false

	cfg.Database.Path = "./data/bangarr.db"
	cfg.Cache.ExpireDays = 30

	cfg.Bangumi.BaseURL = "https://api.bgm.tv"

	cfg.Log.Level = "info"
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("BANGARR_SONARR_URL"); v != "" {
		cfg.Sonarr.URL = v
	}
	if v := os.Getenv("BANGARR_SONARR_API_KEY"); v != "" {
		cfg.Sonarr.APIKey = v
	}
	if v := os.Getenv("BANGARR_BANGUMI_USER_ID"); v != "" {
		cfg.Bangumi.UserID = v
	}
	if v := os.Getenv("BANGARR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Sonarr.URL == "" {
		return fmt.Errorf("config: sonarr.url is required")
	}
	if c.Sonarr.APIKey == "" {
		return fmt.Errorf("config: sonarr.api_key is required")
	}
	if c.Bangumi.UserID == "" {
		return fmt.Errorf("config: bangumi.user_id is required")
	}
	if c.Cache.ExpireDays <= 0 {
		return fmt.Errorf("config: cache.expire_days must be positive, got %d", c.Cache.ExpireDays)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config: database.path is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}
