package factory

import (
	"io"

	"github.com/mikey/news-credibility/internal/adapters/frontend"
	"github.com/mikey/news-credibility/internal/config"
	"github.com/mikey/news-credibility/internal/ports"
	"go.uber.org/zap"
)

// FrontendFactory creates the presentation surfaces
type FrontendFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service ports.Analyzer
}

// NewFrontendFactory creates a new frontend factory
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, service ports.Analyzer) *FrontendFactory {
	return &FrontendFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateHTTPFrontend creates the JSON API frontend
func (f *FrontendFactory) CreateHTTPFrontend() ports.Frontend {
	return frontend.NewHTTPFrontend(f.service, f.cfg.GetServer(), f.logger.Named("http"))
}

// CreateCLIFrontend creates a one-shot frontend that writes reports to out
func (f *FrontendFactory) CreateCLIFrontend(out io.Writer, showMatches bool) *frontend.CLIFrontend {
	return frontend.NewCLIFrontend(f.service, f.logger.Named("cli"), out, showMatches)
}
