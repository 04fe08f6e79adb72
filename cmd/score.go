package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// scoreCmd explains the score of one project.
var scoreCmd = &cobra.Command{
	Use:   "score <id|name>",
	Short: "Show the score breakdown of a single project.",
	Long: `Look up a project by id or name and print each weighted component of its score.

A numeric argument is tried as an id first and then as a name.

Examples:
  folio score 12
  folio score options-pricing --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot score project", err)
		}
	},
}
