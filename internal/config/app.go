package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/bioprep/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"BIOPREP_RUNTIME_PATH" envDefault:".bioprep"`
	HTTPAddr    string `env:"BIOPREP_HTTP_ADDR" envDefault:":8080"`

	// Batch sequencing
	BatchDelay       time.Duration `env:"BATCH_DELAY" envDefault:"1s"`
	BatchConcurrency int           `env:"BATCH_CONCURRENCY" envDefault:"1"`

	// Record field the generated text is written to
	BioField string `env:"BIO_FIELD" envDefault:"cleaned_bio"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	if c.BatchConcurrency < 1 {
		c.BatchConcurrency = 1
	}
	return c, nil
}

func (c AppConfig) GetRuntimePath() string {
	return resolveRuntimePath(c.RuntimePath)
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.GetRuntimePath(), ".env")
}

func (c AppConfig) GetBatchDelay() time.Duration {
	return c.BatchDelay
}

func (c AppConfig) GetBatchConcurrency() int {
	return c.BatchConcurrency
}
