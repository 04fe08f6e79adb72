package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/huangsam/folio/core"
	"github.com/huangsam/folio/internal/contract"
)

// syncCmd pulls GitHub repositories into the store.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync public GitHub repositories into the project store.",
	Long: `Fetch the public repositories of --github-user and upsert them as projects.

Private repositories are skipped. Repository topics are fetched concurrently
and responses are revalidated with cached ETags unless --github-cache=no.
Requests are throttled by --github-rate and guarded by a circuit breaker.

Examples:
  FOLIO_GITHUB_TOKEN=... folio sync --github-user octocat
  folio sync --github-user octocat --github-rate 2 --workers 4`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteSync(ctx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot sync repositories", err)
		}
	},
}
