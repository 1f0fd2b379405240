package main

import (
	"os"
	"os/signal"
	"syscall"

	mcptransport "github.com/sandevgo/bioprep/internal/transport/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server over stdio",
	Long:  `Exposes generate_biography and describe_face as MCP tools on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		_, metisCfg := loadConfig(ctx)
		bio, desc, err := initServices(ctx, metisCfg)
		if err != nil {
			return err
		}

		return mcptransport.NewServer(bio, desc).Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
