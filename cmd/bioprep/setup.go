package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/bioprep/internal/config"
	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/internal/providers/metis"
	"github.com/sandevgo/bioprep/internal/providers/tokenizer"
	"github.com/sandevgo/bioprep/internal/service/batch"
	"github.com/sandevgo/bioprep/internal/service/biography"
	"github.com/sandevgo/bioprep/internal/service/face"
	"github.com/sandevgo/bioprep/pkg/log"
	"github.com/sandevgo/bioprep/pkg/retry"
)

// loadConfig reads <runtime>/.env and then parses both config structs.
// AppConfig is parsed twice: once to locate the runtime directory, once
// more so values from the .env file apply.
func loadConfig(ctx context.Context) (*config.AppConfig, *config.MetisConfig) {
	logger := log.FromCtx(ctx)
	if err := initEnv(ctx, config.NewAppConfig(ctx)); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}
	return config.NewAppConfig(ctx), config.NewMetisConfig(ctx)
}

func newMetisClient(ctx context.Context, cfg *config.MetisConfig, botID string) *metis.Client {
	rc := retry.NewDefaultConfig()
	rc.MaxRetries = cfg.MaxRetries
	rc.InitialDelay = cfg.RetryDelay

	log.FromCtx(ctx).Debug().
		Str("base_url", cfg.BaseURL).
		Str("bot_id", botID).
		Int("max_retries", rc.MaxRetries).
		Dur("retry_delay", rc.InitialDelay).
		Msg("metis client configured")

	return metis.NewClient(metis.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		BotID:   botID,
		Timeout: cfg.Timeout,
		Retry:   rc,
	})
}

func newGenerator(ctx context.Context, cfg *config.MetisConfig) (*biography.Generator, error) {
	botID, err := cfg.GetBioBotID()
	if err != nil {
		return nil, err
	}
	return biography.NewGenerator(newMetisClient(ctx, cfg, botID), tokenizer.NewTiktoken()), nil
}

func newDescriber(ctx context.Context, cfg *config.MetisConfig) (*face.Describer, error) {
	botID, err := cfg.GetFaceBotID()
	if err != nil {
		return nil, err
	}
	return face.NewDescriber(newMetisClient(ctx, cfg, botID)), nil
}

// initServices builds whichever generators have a bot id configured.
// A missing bot id leaves the matching interface nil.
func initServices(ctx context.Context, cfg *config.MetisConfig) (batch.BiographyGenerator, batch.FaceDescriber, error) {
	logger := log.FromCtx(ctx)

	var (
		bio  batch.BiographyGenerator
		desc batch.FaceDescriber
	)
	if g, err := newGenerator(ctx, cfg); err == nil {
		bio = g
	} else {
		logger.Warn().Err(err).Msg("biography generation disabled")
	}
	if d, err := newDescriber(ctx, cfg); err == nil {
		desc = d
	} else {
		logger.Warn().Err(err).Msg("face description disabled")
	}

	if bio == nil && desc == nil {
		return nil, nil, fmt.Errorf("configure METIS_BIO_BOT_ID or METIS_FACE_BOT_ID: %w", config.ErrMissingBotID)
	}
	return bio, desc, nil
}

func initEnv(ctx context.Context, cfg core.RuntimeConfig) error {
	logger := log.FromCtx(ctx)
	envFile := cfg.GetEnvPath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
