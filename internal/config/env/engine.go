package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"roulette_client/internal/config"
)

const (
	engineURLEnvName     = "ENGINE_URL"
	engineTimeoutEnvName = "ENGINE_TIMEOUT"

	defaultEngineTimeout = 5 * time.Second
)

type engineConfig struct {
	baseURL string
	timeout time.Duration
}

func NewEngineConfig() (config.EngineConfig, error) {
	baseURL := os.Getenv(engineURLEnvName)
	if len(baseURL) == 0 {
		return nil, errors.New("engine url not found")
	}

	timeout := defaultEngineTimeout
	if raw := os.Getenv(engineTimeoutEnvName); len(raw) > 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid engine timeout: %w", err)
		}
		timeout = parsed
	}

	return &engineConfig{
		baseURL: baseURL,
		timeout: timeout,
	}, nil
}

func (cfg *engineConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *engineConfig) Timeout() time.Duration {
	return cfg.timeout
}
