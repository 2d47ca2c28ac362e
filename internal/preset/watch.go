package preset

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path on every write and passes the new presets to onChange.
// A file that fails to parse is logged and the previous presets stay active.
// It runs until ctx is cancelled.
func Watch(ctx context.Context, path string, logger *zap.Logger, onChange func([]Preset)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors that save via rename replace the inode.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	logger.Info("Watching presets", zap.String("file", path))

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			presets, err := Load(path)
			if err != nil {
				logger.Warn("Presets reload failed, keeping previous", zap.String("file", path), zap.Error(err))
				continue
			}

			logger.Info("Presets loaded", zap.Int("count", len(presets)), zap.String("file", path))
			onChange(presets)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Presets watcher error", zap.Error(err))
		}
	}
}
