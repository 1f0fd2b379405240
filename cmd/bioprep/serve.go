package main

import (
	"os"
	"os/signal"
	"syscall"

	httptransport "github.com/sandevgo/bioprep/internal/transport/http"
	"github.com/sandevgo/bioprep/pkg/log"
	"github.com/sandevgo/bioprep/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long:  `Starts an HTTP server exposing biography and face description endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting bioprep api")

		appCfg, metisCfg := loadConfig(ctx)
		bio, desc, err := initServices(ctx, metisCfg)
		if err != nil {
			return err
		}

		server := httptransport.NewServer(appCfg.HTTPAddr, httptransport.NewHandler(bio, desc))
		if err := srv.Run(ctx, server); err != nil {
			return err
		}

		logger.Info().Msg("bioprep api has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
