package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// importCmd loads a seed file into the store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import projects from a JSON or YAML seed file.",
	Long: `Load projects from a JSON or YAML seed file and upsert them into the store.

The file holds a list of projects or an object with a "projects" key.
Projects are matched on github_id when present and on name otherwise.
With --watch, the file is re-imported on every change until interrupted.

Examples:
  folio import projects.yaml
  folio import seed.json --watch`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteImport(ctx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot import projects", err)
		}
	},
}
