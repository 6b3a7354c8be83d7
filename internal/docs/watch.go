package docs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// debounce batches bursts of filesystem events (editors write several times
// per save) into a single regeneration.
const debounce = 250 * time.Millisecond

// Watch regenerates reference pages whenever a Go file under the source
// tree changes, until ctx is done. Meant to run next to the site
// generator's live-reload server.
func (g *Generator) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addRecursive(watcher, g.cfg.SourcePath); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// New package directories need their own watch.
					if err := addRecursive(watcher, event.Name); err != nil {
						g.logger.Warn("cannot watch new directory",
							zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if !strings.HasSuffix(event.Name, ".go") {
				continue
			}
			g.logger.Debug("source changed", zap.String("file", event.Name))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if _, err := g.Generate(); err != nil {
				g.logger.Error("regeneration failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// addRecursive watches root and every non-hidden directory below it.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "testdata" || base == "vendor") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
