package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data.Dir != "assets/fishbook" || cfg.Schedule.TickCron != "*/5 * * * * *" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Search.MergeLimit != 10 || cfg.Search.WeatherDays != 7 || cfg.Search.CombinedDays != 7 {
		t.Errorf("unexpected search defaults %+v", cfg.Search)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.TelegramEnabled() {
		t.Errorf("unexpected http/telegram defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `telegram:
  bot_token: file-token
  chat_id: "42"
data:
  base_url: https://example.com/fishbook
search:
  merge_limit: 4
http:
  addr: ":9090"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("CRON_TICK", "* * * * * *")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" || cfg.Telegram.ChatID != "42" {
		t.Errorf("unexpected telegram %+v", cfg.Telegram)
	}
	if cfg.Data.Dir != "" || cfg.Data.BaseURL != "https://example.com/fishbook" {
		t.Errorf("expected base_url without default dir, got %+v", cfg.Data)
	}
	if cfg.Search.MergeLimit != 4 || cfg.HTTP.Addr != ":9090" || cfg.Schedule.TickCron != "* * * * * *" {
		t.Errorf("unexpected overrides %+v", cfg)
	}
}

func TestLoad_BadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telegram: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("SEARCH_MERGE_LIMIT", "many")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected bad SEARCH_MERGE_LIMIT to fail")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cfg := base()
	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing chat id to fail")
	}

	cfg = base()
	cfg.Search.CombinedDays = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative search cap to fail")
	}

	cfg = base()
	cfg.Data.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing data source to fail")
	}
}
