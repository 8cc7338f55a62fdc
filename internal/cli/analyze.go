package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikey/news-credibility/internal/adapters/frontend"
	"github.com/mikey/news-credibility/internal/di"
	"github.com/mikey/news-credibility/internal/factory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type analyzeFlags struct {
	inputFile   string
	example     int
	showMatches bool
	timeout     time.Duration
}

func newAnalyzeCommand(global *globalFlags) *cobra.Command {
	flags := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze a news text and print the credibility report",
		Long: `Analyze classifies one news text and prints a credibility report.

The text is taken from the arguments, from --file, from --example, or
from stdin when none of those is given.

Example:
  news-credibility analyze "Government announces free college education"
  news-credibility analyze --file article.txt --show-matches
  news-credibility analyze --example 3
  cat article.txt | news-credibility analyze`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args, flags)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()

			container, err := di.BuildContainer(ctx, global.options(true))
			if err != nil {
				return fmt.Errorf("failed to build dependency container: %w", err)
			}

			return container.Invoke(func(f *factory.FrontendFactory, logger *zap.Logger) error {
				defer logger.Sync()
				if err := f.CreateCLIFrontend(cmd.OutOrStdout(), flags.showMatches).Run(ctx, text); err != nil {
					return &reportedError{err: err}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.inputFile, "file", "f", "", "read the news text from a file")
	cmd.Flags().IntVar(&flags.example, "example", 0, "analyze the numbered example prompt (see the examples command)")
	cmd.Flags().BoolVar(&flags.showMatches, "show-matches", false, "list the similar documents that were found")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 2*time.Minute, "overall timeout including classifier startup")
	return cmd
}

func readInput(stdin io.Reader, args []string, flags *analyzeFlags) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case flags.example != 0:
		examples := frontend.Examples()
		if flags.example < 1 || flags.example > len(examples) {
			return "", fmt.Errorf("example must be between 1 and %d", len(examples))
		}
		return examples[flags.example-1], nil
	case flags.inputFile != "":
		data, err := os.ReadFile(flags.inputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}
