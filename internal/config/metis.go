package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/pkg/log"
)

var ErrMissingBotID = errors.New("bot id is not configured")

// MetisConfig holds credentials and client tuning. Credentials are only ever
// read from the environment.
type MetisConfig struct {
	APIKey    string `env:"METIS_API_KEY,required,notEmpty"`
	BaseURL   string `env:"METIS_BASE_URL" envDefault:"https://api.metisai.ir/api/v1"`
	BioBotID  string `env:"METIS_BIO_BOT_ID"`
	FaceBotID string `env:"METIS_FACE_BOT_ID"`

	MaxRetries int           `env:"METIS_MAX_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"METIS_RETRY_DELAY" envDefault:"1s"`
	Timeout    time.Duration `env:"METIS_TIMEOUT" envDefault:"120s"`
}

func NewMetisConfig(ctx context.Context) *MetisConfig {
	c, err := ParseMetisConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Metis config")
	}
	return c
}

func ParseMetisConfig() (*MetisConfig, error) {
	c := &MetisConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.BaseURL == "" {
		c.BaseURL = core.DefaultMetisBaseURL
	}
	if c.MaxRetries < 0 {
		return nil, fmt.Errorf("METIS_MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return nil, fmt.Errorf("METIS_RETRY_DELAY must not be negative, got %s", c.RetryDelay)
	}
	return c, nil
}

func (c MetisConfig) GetBioBotID() (string, error) {
	if c.BioBotID == "" {
		return "", fmt.Errorf("METIS_BIO_BOT_ID: %w", ErrMissingBotID)
	}
	return c.BioBotID, nil
}

func (c MetisConfig) GetFaceBotID() (string, error) {
	if c.FaceBotID == "" {
		return "", fmt.Errorf("METIS_FACE_BOT_ID: %w", ErrMissingBotID)
	}
	return c.FaceBotID, nil
}
