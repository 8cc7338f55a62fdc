package cli

import (
	"fmt"

	"github.com/mikey/news-credibility/internal/adapters/frontend"
	"github.com/spf13/cobra"
)

func newExamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List example news texts",
		Long:  `Examples lists sample texts. Run one with: news-credibility analyze --example N`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for i, ex := range frontend.Examples() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, ex)
			}
		},
	}
}
