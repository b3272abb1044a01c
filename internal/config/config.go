package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tailscale/hujson"
)

type Config struct {
	Server  ServerConfig  `json:"server"`
	Store   StoreConfig   `json:"store"`
	Logging LoggingConfig `json:"logging"`
	I18n    I18nConfig    `json:"i18n"`
}

type ServerConfig struct {
	ListenAddr  string `json:"listen_addr"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	HostPath    string `json:"host_path"`
	MetricsPath string `json:"metrics_path"`
	AuthToken   string `json:"auth_token"`
	// Origins allowed to open a host session; empty allows any.
	AllowedOrigins []string `json:"allowed_origins"`
}

type StoreConfig struct {
	RedisAddr  string `json:"redis_addr"`
	TTLSeconds int    `json:"ttl_seconds"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

type I18nConfig struct {
	// LocalesDir overrides the built in translations when set.
	LocalesDir string `json:"locales_dir"`
}

func (s StoreConfig) TTL() time.Duration {
	return time.Duration(s.TTLSeconds) * time.Second
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:  envOrDefault("BRIDGE_LISTEN_ADDR", ":8080"),
			HostPath:    "/ws/host",
			MetricsPath: "/metrics",
			AuthToken:   os.Getenv("BRIDGE_AUTH_TOKEN"),
		},
		Store: StoreConfig{
			RedisAddr:  os.Getenv("REDIS_ADDR"),
			TTLSeconds: 24 * 60 * 60,
		},
		Logging: LoggingConfig{
			Level: envOrDefault("LOG_LEVEL", "info"),
		},
	}
}

// Load reads a JSON config file. Comments and trailing commas are accepted.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config failed: %w", err)
	}
	return Parse(content)
}

func Parse(content []byte) (Config, error) {
	cfg := Default()

	std, err := hujson.Standardize(content)
	if err != nil {
		return Config{}, fmt.Errorf("parse config failed: %w", err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config failed: %w", err)
	}

	if cfg.Server.HostPath == "" {
		cfg.Server.HostPath = "/ws/host"
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = "/metrics"
	}
	if cfg.Server.ListenAddr == "" {
		if cfg.Server.Host != "" && cfg.Server.Port > 0 {
			cfg.Server.ListenAddr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		} else {
			cfg.Server.ListenAddr = ":8080"
		}
	}
	if cfg.Store.TTLSeconds <= 0 {
		cfg.Store.TTLSeconds = 24 * 60 * 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
