package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// metricsCmd displays the formal definition of the score.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the scoring formula, weights and keyword tables",
	Long: `Show the formal definition of the project score.

Provides complete transparency into how projects are ranked, including:
- The weighted formula of the final score
- Purpose and formula of each component
- Keyword categories and their weights

No projects are read. This is purely informational.

Examples:
  folio metrics
  folio metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
