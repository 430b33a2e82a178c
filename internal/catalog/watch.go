package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch blocks until ctx is done, calling onChange whenever one of the catalog
// files is written, created or replaced. Parent directories are watched so
// editors that save through rename are still seen.
func Watch(ctx context.Context, logger *zap.Logger, paths []string, onChange func()) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(paths) == 0 {
		<-ctx.Done()
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, ok := files[filepath.Clean(ev.Name)]; !ok {
				continue
			}
			if ev.Op&relevant == 0 {
				continue
			}
			logger.Debug("catalog changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}
