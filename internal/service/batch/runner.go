package batch

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/bioprep/internal/core"
	"github.com/sandevgo/bioprep/internal/record"
	"github.com/sandevgo/bioprep/internal/service/face"
	"github.com/sandevgo/bioprep/internal/service/ui"
	"github.com/sandevgo/bioprep/pkg/log"
	"golang.org/x/sync/errgroup"
)

type BiographyGenerator interface {
	Generate(ctx context.Context, p *record.Person) (string, error)
}

type FaceDescriber interface {
	Describe(ctx context.Context, imageURLs []string) (face.Description, error)
}

type outcome int

const (
	succeeded outcome = iota
	unclear
	skipped
	failed
)

// Report tallies what happened to each record of a run.
type Report struct {
	RunID     string
	Total     int
	Succeeded int
	Unclear   int
	Skipped   int
	Failed    int
}

func (r *Report) add(o outcome) {
	switch o {
	case succeeded:
		r.Succeeded++
	case unclear:
		r.Unclear++
	case skipped:
		r.Skipped++
	case failed:
		r.Failed++
	}
}

// Runner walks records one call at a time (or up to the concurrency cap),
// pausing after every remote call to stay under the service's rate limit.
type Runner struct {
	delay       time.Duration
	concurrency int
	field       string
	progressOut io.Writer
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewRunner(cfg core.BatchConfig, field string, progressOut io.Writer) *Runner {
	concurrency := cfg.GetBatchConcurrency()
	if concurrency < 1 {
		concurrency = 1
	}
	if field == "" {
		field = record.FieldCleanedBio
	}
	return &Runner{
		delay:       cfg.GetBatchDelay(),
		concurrency: concurrency,
		field:       field,
		progressOut: progressOut,
		sleep:       sleepCtx,
	}
}

// Biographies stores a generated biography in each record's text field.
// Records whose generation fails are left untouched.
func (r *Runner) Biographies(ctx context.Context, gen BiographyGenerator, people []*record.Person) (Report, error) {
	return r.run(ctx, "biographies", people, func(ctx context.Context, p *record.Person) outcome {
		logger := log.FromCtx(ctx)

		text, err := gen.Generate(ctx, p)
		if err != nil {
			logger.Error().Err(err).Str("person", p.Label()).Msg("failed to generate biography")
			return failed
		}
		if err := p.Set(r.field, text); err != nil {
			logger.Error().Err(err).Str("person", p.Label()).Msg("failed to store biography")
			return failed
		}
		return succeeded
	})
}

// FaceDescriptions appends a face description to each record's text field.
// Records without images are skipped without a remote call.
func (r *Runner) FaceDescriptions(ctx context.Context, desc FaceDescriber, people []*record.Person) (Report, error) {
	return r.run(ctx, "faces", people, func(ctx context.Context, p *record.Person) outcome {
		logger := log.FromCtx(ctx)

		images := p.Images()
		if len(images) == 0 {
			logger.Info().Str("person", p.Label()).Msg("no images found, skipping")
			return skipped
		}

		d, err := desc.Describe(ctx, images)
		switch {
		case err != nil:
			logger.Error().Err(err).Str("person", p.Label()).Msg("failed to get face description")
			return failed
		case d.Unclear:
			logger.Info().Str("person", p.Label()).Msg("image was unclear")
			return unclear
		}

		if err := p.AppendText(r.field, d.Text); err != nil {
			logger.Error().Err(err).Str("person", p.Label()).Msg("failed to store face description")
			return failed
		}
		return succeeded
	})
}

func (r *Runner) run(
	ctx context.Context,
	label string,
	people []*record.Person,
	process func(ctx context.Context, p *record.Person) outcome,
) (Report, error) {
	report := Report{RunID: uuid.NewString(), Total: len(people)}
	ctx = log.WithFields(ctx, map[string]string{"run_id": report.RunID})
	logger := log.FromCtx(ctx)
	logger.Info().Int("records", len(people)).Int("concurrency", r.concurrency).Msgf("processing %s", label)

	bar := ui.NewProgress(r.progressOut, label, len(people))
	defer bar.Finish()

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)

	last := len(people) - 1
	for i, p := range people {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := process(ctx, p)

			mu.Lock()
			report.add(o)
			mu.Unlock()
			bar.Step()

			if o == skipped || i == last {
				return nil
			}
			return r.sleep(ctx, r.delay)
		})
	}

	err := g.Wait()
	logger.Info().
		Int("succeeded", report.Succeeded).
		Int("unclear", report.Unclear).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msgf("finished %s", label)

	if err == nil {
		err = ctx.Err()
	}
	return report, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
