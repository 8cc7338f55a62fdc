package cli

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/mikey/news-credibility/internal/di"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

// reportedError marks a failure whose message was already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already printed by a command
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

type globalFlags struct {
	configFile string
	verbose    bool
	jsonLog    bool
}

func (g *globalFlags) options(console bool) di.Options {
	return di.Options{
		ConfigFile: g.configFile,
		Console:    console,
		Verbose:    g.verbose,
		JSONLog:    g.jsonLog,
	}
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "news-credibility",
		Short: "News credibility analyzer",
		Long: `news-credibility estimates whether a piece of news text reads as credible
or potentially misleading, using a text classification model and an
optional lookup of similar known articles.

Verdicts are statistical pattern matches, not fact checks. Always verify
important claims through trusted sources.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default: ./configs/config.yaml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVar(&flags.jsonLog, "json-log", false, "output logs in JSON format")

	root.AddCommand(
		newAnalyzeCommand(flags),
		newServeCommand(flags),
		newExamplesCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "news-credibility %s\n", Version)
		},
	}
}
