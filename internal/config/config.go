package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"landscapevision/internal/utils"
)

// suggestionModels holds the model used per provider when SUGGESTION_MODEL
// is unset.
var suggestionModels = map[string]string{
	"gemini":    DefaultSuggestionModel,
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
}

const (
	DefaultImageModel       = "gemini-2.5-flash-image"
	DefaultSuggestionModel  = "gemini-2.5-flash"
	DefaultAutosaveInterval = 30 * time.Second
)

// Config carries the runtime settings read from the environment.
type Config struct {
	DBPath             string
	ImageModel         string
	SuggestionProvider string
	SuggestionModel    string
	AutosaveInterval   time.Duration
}

// Load reads the .env files found by utils.LoadEnv, then the process
// environment. Missing values fall back to defaults.
func Load() (Config, error) {
	if err := utils.LoadEnv(); err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:             strings.TrimSpace(os.Getenv("LANDSCAPE_DB_PATH")),
		ImageModel:         envOr("GEMINI_IMAGE_MODEL", DefaultImageModel),
		SuggestionProvider: strings.ToLower(envOr("SUGGESTION_PROVIDER", "gemini")),
		SuggestionModel:    strings.TrimSpace(os.Getenv("SUGGESTION_MODEL")),
		AutosaveInterval:   DefaultAutosaveInterval,
	}

	if raw := strings.TrimSpace(os.Getenv("AUTOSAVE_INTERVAL")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("parse AUTOSAVE_INTERVAL: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("AUTOSAVE_INTERVAL must be positive, got %s", d)
		}
		cfg.AutosaveInterval = d
	}

	fallback, ok := suggestionModels[cfg.SuggestionProvider]
	if !ok {
		return cfg, fmt.Errorf("unsupported suggestion provider: %s", cfg.SuggestionProvider)
	}
	if cfg.SuggestionModel == "" {
		cfg.SuggestionModel = fallback
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
