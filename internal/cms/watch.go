package cms

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch purges the cache whenever a YAML file in the content directory changes. It blocks until
// ctx is cancelled.
func (c *Client) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := c.ContentDir()
	if err := w.Add(dir); err != nil {
		return err
	}
	c.logger.Info("cms: watching local content", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isContentFile(evt.Name) || evt.Op == fsnotify.Chmod {
				continue
			}
			c.Purge()
			c.logger.Debug("cms: content changed, cache purged",
				zap.String("file", filepath.Base(evt.Name)), zap.String("op", evt.Op.String()))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("cms: watcher error", zap.Error(err))
		}
	}
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
