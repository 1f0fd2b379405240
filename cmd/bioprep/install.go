package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/bioprep/internal/config"
	"github.com/sandevgo/bioprep/internal/service/installer"
	"github.com/sandevgo/bioprep/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Store Metis credentials in the runtime directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		runtimePath := config.NewAppConfig(ctx).GetRuntimePath()
		state, err := installer.RunWizard(runtimePath)
		if err != nil {
			return err
		}

		// confirm the written file parses the way commands will read it
		if err := godotenv.Load(state.EnvPath); err != nil {
			logger.Warn().Err(err).Str("path", state.EnvPath).Msg("failed to load .env file")
		} else if _, err := config.ParseMetisConfig(); err != nil {
			logger.Warn().Err(err).Msg("saved configuration does not parse")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'bioprep bio'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
