package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// featuredCmd selects the projects for a portfolio landing page.
var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Show the top projects to feature.",
	Long: `Rank the stored projects and keep the top few for a portfolio landing page.

By default only projects flagged as featured during sync or import are
considered. Pass --flagged-only=false to pick from every stored project.

Examples:
  folio featured
  folio featured --featured-limit 3 --output json
  folio featured --flagged-only=false`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFeatured(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot select featured projects", err)
		}
	},
}
