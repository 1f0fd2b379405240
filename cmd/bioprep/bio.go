package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/internal/service/batch"
	"github.com/sandevgo/bioprep/pkg/log"
	"github.com/spf13/cobra"
)

var (
	bioIn  string
	bioOut string
)

var bioCmd = &cobra.Command{
	Use:   "bio",
	Short: "Generate Persian biographies from person records",
	Long: `Without --in, generates a biography for a built-in sample record and prints it.
With --in, generates a biography for every record in the file and stores it
in the configured field (cleaned_bio by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg, metisCfg := loadConfig(ctx)
		gen, err := newGenerator(ctx, metisCfg)
		if err != nil {
			return err
		}

		if bioIn == "" {
			start := time.Now()
			text, err := gen.Generate(ctx, record.SamplePerson())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			fmt.Fprintf(cmd.OutOrStdout(), "\nelapsed: %.2fs\n", time.Since(start).Seconds())
			return nil
		}

		people, err := record.LoadFile(bioIn)
		if err != nil {
			return err
		}

		runner := batch.NewRunner(appCfg, appCfg.BioField, cmd.ErrOrStderr())
		report, runErr := runner.Biographies(ctx, gen, people)
		if err := saveRecords(ctx, outPath(bioIn, bioOut), people); err != nil {
			return err
		}
		printReport(cmd, report)
		return runErr
	},
}

func init() {
	bioCmd.Flags().StringVar(&bioIn, "in", "", "JSON array of person records")
	bioCmd.Flags().StringVar(&bioOut, "out", "", "where to write the updated records (defaults to --in)")
	rootCmd.AddCommand(bioCmd)
}

func outPath(in, out string) string {
	if out == "" {
		return in
	}
	return out
}

// saveRecords writes results even after an interrupted run so finished
// records are not lost.
func saveRecords(ctx context.Context, path string, people []*record.Person) error {
	if err := record.SaveFile(path, people); err != nil {
		return err
	}
	log.FromCtx(ctx).Info().Str("path", path).Int("records", len(people)).Msg("records saved")
	return nil
}

func printReport(cmd *cobra.Command, r batch.Report) {
	fmt.Fprintf(cmd.OutOrStdout(),
		"run %s: %d records, %d succeeded, %d unclear, %d skipped, %d failed\n",
		r.RunID, r.Total, r.Succeeded, r.Unclear, r.Skipped, r.Failed)
}
