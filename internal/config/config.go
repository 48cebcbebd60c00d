package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the settings of both services. Loading order: built-in
// defaults, then an optional config.yaml, then environment variables.
type Config struct {
	Ledger  LedgerConfig  `koanf:"ledger"`
	Bot     BotConfig     `koanf:"bot"`
	Logging LoggingConfig `koanf:"logging"`
}

type LedgerConfig struct {
	Host          string        `koanf:"host"`
	Port          int           `koanf:"port"`
	DataDir       string        `koanf:"data_dir"`
	UploadsDir    string        `koanf:"uploads_dir"`
	BotWebhookURL string        `koanf:"bot_webhook_url"`
	NotifyTimeout time.Duration `koanf:"notify_timeout"`
	Lava          LavaConfig    `koanf:"lava"`
}

type LavaConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type BotConfig struct {
	Token            string      `koanf:"token"`
	ChannelID        int64       `koanf:"channel_id"`
	WebhookHost      string      `koanf:"webhook_host"`
	WebhookPort      int         `koanf:"webhook_port"`
	LedgerURL        string      `koanf:"ledger_url"`
	Tariff           string      `koanf:"tariff"`
	StarsPrice       int         `koanf:"stars_price"`
	SubscriptionDays int         `koanf:"subscription_days"`
	OfferURL         string      `koanf:"offer_url"`
	Redis            RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

func defaultConfig() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Host:          "0.0.0.0",
			Port:          8000,
			DataDir:       "data",
			UploadsDir:    "uploads",
			BotWebhookURL: "http://localhost:8001",
			NotifyTimeout: 3 * time.Second,
			Lava: LavaConfig{
				BaseURL: "https://api.lava.top",
				Timeout: 10 * time.Second,
			},
		},
		Bot: BotConfig{
			WebhookHost:      "0.0.0.0",
			WebhookPort:      8001,
			LedgerURL:        "http://localhost:8000",
			Tariff:           "monthly",
			StarsPrice:       1000,
			SubscriptionDays: 30,
			Redis: RedisConfig{
				Host: "localhost",
				Port: "6379",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings translates flat environment variable names into config paths.
var envMappings = map[string]string{
	"ledger_host":     "ledger.host",
	"ledger_port":     "ledger.port",
	"data_dir":        "ledger.data_dir",
	"uploads_dir":     "ledger.uploads_dir",
	"bot_webhook_url": "ledger.bot_webhook_url",
	"notify_timeout":  "ledger.notify_timeout",

	"lava_api_key":  "ledger.lava.api_key",
	"lava_base_url": "ledger.lava.base_url",
	"lava_timeout":  "ledger.lava.timeout",

	"bot_token":        "bot.token",
	"channel_id":       "bot.channel_id",
	"bot_webhook_host": "bot.webhook_host",
	"bot_webhook_port": "bot.webhook_port",
	"ledger_url":       "bot.ledger_url",
	"tariff":           "bot.tariff",
	"sub_price_stars":  "bot.stars_price",
	"sub_days":         "bot.subscription_days",
	"offer_url":        "bot.offer_url",

	"redis_host":     "bot.redis.host",
	"redis_port":     "bot.redis.port",
	"redis_password": "bot.redis.password",
	"redis_db":       "bot.redis.db",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

func envTransform(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}

func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load builds the configuration from defaults, optional YAML file and env vars.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
