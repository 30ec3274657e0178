package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds the config from the environment. A .env file is applied
// first if present, then an optional config.yaml (CONFIG_FILE) fills
// anything the environment left empty.
func Load() App {
	_ = godotenv.Load()

	cfg := App{
		Port:            getenv("APP_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       getenv("JWT_SECRET", "local_dev_secret"),
		AdminEmail:      getenv("ADMIN_EMAIL", "mrrameez32@gmail.com"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "rameez1122"),
		PayoutBaseURL:   getenv("PAYOUT_BASE_URL", "https://api.payouts.example.com"),
		PayoutAPIKey:    os.Getenv("PAYOUT_API_KEY"),
		PayoutCallback:  os.Getenv("PAYOUT_CALLBACK_TOKEN"),
		IdempotencyPath: getenv("IDEMPOTENCY_PATH", "webhook-events.db"),
		Env:             getenv("APP_ENV", "dev"),
	}

	if path := getenv("CONFIG_FILE", "config.yaml"); path != "" {
		applyFile(&cfg, path)
	}

	if cfg.DatabaseURL == "" {
		slog.Error("required env missing", "key", "DATABASE_URL")
		panic("missing env DATABASE_URL")
	}
	return cfg
}

// applyFile overlays values from a YAML file onto empty fields only;
// the environment always wins.
func applyFile(cfg *App, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("config file unreadable", "path", path, "err", err)
		}
		return
	}
	var file App
	if err := yaml.Unmarshal(data, &file); err != nil {
		slog.Warn("config file invalid", "path", path, "err", err)
		return
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = file.DatabaseURL
	}
	if cfg.PayoutAPIKey == "" {
		cfg.PayoutAPIKey = file.PayoutAPIKey
	}
	if cfg.PayoutCallback == "" {
		cfg.PayoutCallback = file.PayoutCallback
	}
	if file.PayoutBaseURL != "" {
		cfg.PayoutBaseURL = file.PayoutBaseURL
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
