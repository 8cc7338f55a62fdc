package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/di"
	"github.com/mikey/news-credibility/internal/ports"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(global *globalFlags) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzer over HTTP",
		Long: `Serve exposes the analyzer as a JSON API:

  POST /api/analyze   {"text": "..."}
  GET  /api/examples
  GET  /healthz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := global.options(global.verbose)
			if listen != "" {
				opts.Overrides = map[string]interface{}{"server.listen_address": listen}
			}

			container, err := di.BuildContainer(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}
			return container.Invoke(func(logger *zap.Logger, fe ports.Frontend, classifier core.Classifier, index core.SimilarityIndex) error {
				return serve(ctx, logger, fe, classifier, index)
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides server.listen_address")
	return cmd
}

func serve(ctx context.Context, logger *zap.Logger, fe ports.Frontend, classifier core.Classifier, index core.SimilarityIndex) error {
	defer logger.Sync()

	if err := fe.Start(); err != nil {
		logger.Error("Failed to start frontend", zap.Error(err))
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down...")

	if err := fe.Stop(); err != nil {
		logger.Error("Failed to stop frontend", zap.Error(err))
	}

	closeResource(logger, "classifier", classifier)
	closeResource(logger, "similarity index", index)

	logger.Info("Shutdown complete")
	return nil
}

// closeResource closes v when it holds resources, such as database handles
// or connection pools
func closeResource(logger *zap.Logger, name string, v any) {
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Error("Failed to close "+name, zap.Error(err))
	}
}
