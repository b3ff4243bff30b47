package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config is the full environment-driven configuration of the service.
type Config struct {
	// Port is the HTTP bind port, per the container contract.
	Port int `env:"PORT,default=8080"`

	DifyAPIBase   string `env:"DIFY_API,default=https://api.dify.ai"`
	DifyDatasetID string `env:"DIFY_DATASET_ID"`
	DifyAPIKey    string `env:"DIFY_API_KEY"`

	// WebhookURL is the public https base URL of this service,
	// e.g. https://<service>.run.app.
	WebhookURL   string `env:"WEBHOOK_URL"`
	ChannelToken string `env:"CHANNEL_TOKEN,default=secret-123"`

	// TargetFolderID restricts syncing to files under one Drive folder.
	TargetFolderID string `env:"TARGET_FOLDER_ID"`

	// ProjectID selects the Firestore project. Empty means auto-detect.
	ProjectID string `env:"GOOGLE_CLOUD_PROJECT"`
}

// Load reads a .env file if one exists, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // allow .env for local runs

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}

	cfg.DifyAPIBase = strings.TrimSuffix(strings.TrimSpace(cfg.DifyAPIBase), "/")
	cfg.DifyDatasetID = strings.TrimSpace(cfg.DifyDatasetID)
	cfg.DifyAPIKey = strings.TrimSpace(cfg.DifyAPIKey)
	cfg.WebhookURL = strings.TrimSpace(cfg.WebhookURL)
	cfg.TargetFolderID = strings.TrimSpace(cfg.TargetFolderID)

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
