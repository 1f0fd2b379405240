package srv

import (
	"context"
	"errors"

	"github.com/sandevgo/bioprep/pkg/log"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until ctx is done or one of them
// fails to start. All services are shut down in reverse order before it
// returns the first start error, if any.
func Run(ctx context.Context, services ...Service) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	for _, service := range services {
		g.Go(func() error {
			if err := service.Start(gctx); err != nil {
				log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to start", service)
				return err
			}
			return nil
		})
	}

	startErr := make(chan error, 1)
	go func() { startErr <- g.Wait() }()

	select {
	case <-ctx.Done():
	case <-gctx.Done():
	}

	shutdownErr := Shutdown(context.WithoutCancel(ctx), services...)
	cancel()
	err := <-startErr
	return errors.Join(err, shutdownErr)
}

// Shutdown stops services in reverse order and joins their errors.
func Shutdown(ctx context.Context, services ...Service) error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
