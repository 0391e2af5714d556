package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for the tunables that do not have to be set in the environment.
const (
	DefaultTextModel      = "gemini-2.5-flash"
	DefaultDiscoveryModel = "gemini-2.5-flash"
	DefaultImageModel     = "gemini-2.5-flash-image"
	DefaultVideoModel     = "veo-3.0-generate-001"
	DefaultPollInterval   = 8 * time.Second
	DefaultMaxPolls       = 38
	DefaultPlanDays       = 3
)

// Config holds the configuration for the orchestration layer.
type Config struct {
	GeminiAPIKey string

	TextModel      string
	DiscoveryModel string
	ImageModel     string
	VideoModel     string

	// Media operation tunables. PollInterval must be constant and non-zero;
	// MaxPolls bounds the wait for jobs the backend never resolves.
	PollInterval time.Duration
	MaxPolls     int

	// PlanDays is the fixed day count embedded in plan prompts.
	PlanDays int

	// ArtifactStoragePath is where the CLI persists produced plans.
	ArtifactStoragePath string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	cfg := &Config{
		GeminiAPIKey:        geminiAPIKey,
		TextModel:           envOr("GEMINI_TEXT_MODEL", DefaultTextModel),
		DiscoveryModel:      envOr("GEMINI_DISCOVERY_MODEL", DefaultDiscoveryModel),
		ImageModel:          envOr("GEMINI_IMAGE_MODEL", DefaultImageModel),
		VideoModel:          envOr("GEMINI_VIDEO_MODEL", DefaultVideoModel),
		PollInterval:        DefaultPollInterval,
		MaxPolls:            DefaultMaxPolls,
		PlanDays:            DefaultPlanDays,
		ArtifactStoragePath: envOr("ARTIFACT_STORAGE_PATH", "data/artifacts"),
	}

	if v := os.Getenv("MEDIA_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEDIA_POLL_INTERVAL %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("MEDIA_POLL_INTERVAL must be positive, got %q", v)
		}
		cfg.PollInterval = d
	}

	if v := os.Getenv("MEDIA_MAX_POLLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MEDIA_MAX_POLLS must be a positive integer, got %q", v)
		}
		cfg.MaxPolls = n
	}

	if v := os.Getenv("PLAN_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("PLAN_DAYS must be a positive integer, got %q", v)
		}
		cfg.PlanDays = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
