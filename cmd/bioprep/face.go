package main

import (
	"errors"
	"os"
	"os/signal"

	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/internal/service/batch"
	"github.com/spf13/cobra"
)

var (
	faceIn  string
	faceOut string
)

var faceCmd = &cobra.Command{
	Use:   "face",
	Short: "Describe faces in the images of person records",
	Long: `Sends the images of every record in --in to the vision bot and appends the
Persian description to the configured text field. Records without images are
skipped, and unclear images are logged and left unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if faceIn == "" {
			return errors.New("--in is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg, metisCfg := loadConfig(ctx)
		desc, err := newDescriber(ctx, metisCfg)
		if err != nil {
			return err
		}

		people, err := record.LoadFile(faceIn)
		if err != nil {
			return err
		}

		runner := batch.NewRunner(appCfg, appCfg.BioField, cmd.ErrOrStderr())
		report, runErr := runner.FaceDescriptions(ctx, desc, people)
		if err := saveRecords(ctx, outPath(faceIn, faceOut), people); err != nil {
			return err
		}
		printReport(cmd, report)
		return runErr
	},
}

func init() {
	faceCmd.Flags().StringVar(&faceIn, "in", "", "JSON array of person records")
	faceCmd.Flags().StringVar(&faceOut, "out", "", "where to write the updated records (defaults to --in)")
	rootCmd.AddCommand(faceCmd)
}
