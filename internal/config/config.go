package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Data struct {
		Dir         string `yaml:"dir"`
		BaseURL     string `yaml:"base_url"`
		WeatherFile string `yaml:"weather_file"`
	} `yaml:"data"`
	Schedule struct {
		TickCron   string `yaml:"tick_cron"`
		ReloadCron string `yaml:"reload_cron"`
	} `yaml:"schedule"`
	Search struct {
		MergeLimit   int `yaml:"merge_limit"`
		WeatherDays  int `yaml:"weather_days"`
		CombinedDays int `yaml:"combined_days"`
	} `yaml:"search"`
	Prefs struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"prefs"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
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
	override(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	override(&cfg.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	override(&cfg.Data.Dir, "FISH_DATA_DIR")
	override(&cfg.Data.BaseURL, "FISH_DATA_URL")
	override(&cfg.Data.WeatherFile, "WEATHER_FILE")
	override(&cfg.Schedule.TickCron, "CRON_TICK")
	override(&cfg.Schedule.ReloadCron, "CRON_RELOAD")
	override(&cfg.Prefs.StateFile, "PREFS_FILE")
	override(&cfg.Database.SQLitePath, "SQLITE_PATH")
	override(&cfg.HTTP.Addr, "HTTP_ADDR")
	override(&cfg.Proxy, "HTTPS_PROXY")
	if v := os.Getenv("SEARCH_MERGE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse SEARCH_MERGE_LIMIT: %w", err)
		}
		cfg.Search.MergeLimit = n
	}

	// Defaults
	if cfg.Data.Dir == "" && cfg.Data.BaseURL == "" {
		cfg.Data.Dir = "assets/fishbook"
	}
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "*/5 * * * * *"
	}
	if cfg.Schedule.ReloadCron == "" {
		cfg.Schedule.ReloadCron = "0 */5 * * * *"
	}
	if cfg.Search.MergeLimit == 0 {
		cfg.Search.MergeLimit = 10
	}
	if cfg.Search.WeatherDays == 0 {
		cfg.Search.WeatherDays = 7
	}
	if cfg.Search.CombinedDays == 0 {
		cfg.Search.CombinedDays = 7
	}
	if cfg.Prefs.StateFile == "" {
		cfg.Prefs.StateFile = "data/prefs.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/fish_sentinel.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	return cfg, nil
}

func override(field *string, env string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if c.Data.Dir == "" && c.Data.BaseURL == "" {
		return fmt.Errorf("data.dir or data.base_url is required")
	}
	if c.Search.MergeLimit <= 0 {
		return fmt.Errorf("search.merge_limit must be positive")
	}
	if c.Search.WeatherDays <= 0 {
		return fmt.Errorf("search.weather_days must be positive")
	}
	if c.Search.CombinedDays <= 0 {
		return fmt.Errorf("search.combined_days must be positive")
	}
	return nil
}

// TelegramEnabled reports whether a bot token is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}
