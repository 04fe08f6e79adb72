package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// rankCmd ranks every stored project.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Show the stored projects ranked by score.",
	Long: `Score every stored project and rank them from highest to lowest.

Each project is scored on three components:
- Technical complexity from keyword indicators in name, description and language
- GitHub metrics from stars, forks and watchers
- Recency from the time since the last update

Examples:
  # Top 10 projects
  folio rank

  # Only Rust projects, with the component breakdown
  folio rank --language rust --explain

  # Skip scratch repositories and record the run
  folio rank --exclude "tmp-,*-demo" --record

  # Export the full ranking as CSV
  folio rank --limit 1000 --output csv --output-file ranking.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank projects", err)
		}
	},
}
