package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/huangsam/folio/internal/contract"
	"github.com/huangsam/folio/schema"
)

// Watch reloads path on every write and hands the records to onChange.
// A file that fails to load is reported and skipped. Watch returns when ctx is done.
//
// The parent directory is watched rather than the file, so saves that rename
// a temp file over path keep triggering reloads.
func Watch(ctx context.Context, path string, onChange func([]schema.ProjectRecord)) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "👀 Watching %s for changes\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// A rename over path arrives as Create for path.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			records, err := Load(path)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Reload of %s failed", path), err)
				continue
			}
			onChange(records)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			contract.LogWarn("File watcher error", err)
		}
	}
}
