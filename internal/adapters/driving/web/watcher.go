package web

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lawgic-labs/lawgic/internal/logger"
)

// reloadDebounce coalesces the burst of filesystem events a build emits
// while writing and renaming the index.
const reloadDebounce = 500 * time.Millisecond

// watchIndex watches the vector store directory and reloads the index
// when a rebuild lands. Watch failures only disable hot reload; the
// server keeps serving whatever index it has.
func (s *Server) watchIndex(ctx context.Context, dir string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("index watch disabled: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		logger.Warn("index watch disabled: %v", err)
		return
	}

	indexName := filepath.Base(s.indexPath)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	reload := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != indexName {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("index watch: %v", err)

		case <-reload:
			if err := s.reload(); err != nil {
				logger.Warn("index reload: %v", err)
			}
		}
	}
}
