package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-graph-peer/internal/logger"
)

// Run blocks until ctx is cancelled or the process receives SIGTERM, SIGINT
// or SIGQUIT, then calls shutdown and returns its error.
func Run(ctx context.Context, logger *logger.Logger, shutdown func() error) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	if err := shutdown(); err != nil {
		logger.Err(err).Msg("shutdown finished with error")
		return err
	}

	logger.Info().Msg("server Shutdown gracefully")
	return nil
}
