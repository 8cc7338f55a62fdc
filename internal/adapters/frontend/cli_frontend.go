package frontend

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mikey/news-credibility/internal/core"
	"github.com/mikey/news-credibility/internal/ports"
	"go.uber.org/zap"
)

// CLIFrontend analyzes one text and prints the report
type CLIFrontend struct {
	service     ports.Analyzer
	logger      *zap.Logger
	out         io.Writer
	showMatches bool
}

// NewCLIFrontend creates a new CLI frontend writing to out
func NewCLIFrontend(service ports.Analyzer, logger *zap.Logger, out io.Writer, showMatches bool) *CLIFrontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIFrontend{
		service:     service,
		logger:      logger,
		out:         out,
		showMatches: showMatches,
	}
}

// Run analyzes text and prints the report. The returned error is non-nil
// whenever an error message was printed instead of a verdict.
func (f *CLIFrontend) Run(ctx context.Context, text string) error {
	report, err := f.service.Analyze(ctx, text)
	if err != nil {
		f.logger.Debug("Analysis produced no verdict", zap.Error(err))
		fmt.Fprintln(f.out, core.RenderError(err))
		return err
	}

	fmt.Fprintln(f.out, report.Text)

	if f.showMatches {
		fmt.Fprintf(f.out, "\n=== Similar Documents ===\n")
		if len(report.Documents) == 0 {
			fmt.Fprintln(f.out, "(none)")
		}
		for i, doc := range report.Documents {
			fmt.Fprintf(f.out, "%d. [%.3f] %s%s\n", i+1, doc.Score, preview(doc.Text, 120), labelSuffix(doc))
		}
	}

	f.logger.Debug("Report printed",
		zap.String("request_id", report.RequestID),
		zap.String("model", report.Model),
		zap.Duration("duration", report.Duration))
	return nil
}

func preview(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func labelSuffix(doc core.RetrievedDocument) string {
	if label := doc.Metadata["label"]; label != "" {
		return fmt.Sprintf(" (%s)", label)
	}
	return ""
}
