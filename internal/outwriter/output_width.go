package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/huangsam/folio/internal/contract"
)

const (
	defaultTermWidth = 80 // narrow terminals and CI
	minNameWidth     = 15
	maxNameWidth     = 50
)

// GetMaxTableNameWidth calculates the widest project name the ranked table can show
// based on terminal width and the optional columns.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			termWidth = defaultTermWidth
		} else {
			termWidth = detected
		}
	}

	// Rank + Score + Label with borders/padding
	baseWidth := 30
	if cfg.Detail {
		baseWidth += 50 // Language + Stars + Forks + Updated
	}
	if cfg.Explain {
		baseWidth += 25
	}

	available := termWidth - baseWidth
	if available < minNameWidth {
		return minNameWidth
	}
	if available > maxNameWidth {
		return maxNameWidth
	}
	return available
}
