// Package watcher ingests documents dropped into a watched directory.
// Plain-text and markdown files created or modified under the folder
// are added to the knowledge base automatically.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
	"github.com/quill-labs/aide-cli/internal/logger"
)

// settleDelay is how long a file must be quiet before it is ingested.
// Editors and copies produce bursts of write events for one save.
const settleDelay = 500 * time.Millisecond

// sourceLabel marks documents added by the watcher.
const sourceLabel = "watch"

// Watcher monitors a directory and ingests dropped documents.
type Watcher struct {
	retrieval driving.RetrievalService
	dir       string

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher over the given directory.
func New(retrieval driving.RetrievalService, dir string) *Watcher {
	return &Watcher{
		retrieval: retrieval,
		dir:       dir,
		pending:   make(map[string]*time.Timer),
	}
}

// Run watches the directory until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	logger.Info("Watching %s for .txt and .md files", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent schedules ingestion for relevant create/write events.
// Repeated events for the same path reset the settle timer so a file
// is ingested once per save burst.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}
	if !shouldIngest(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.pending[path] = time.AfterFunc(settleDelay, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.ingest(ctx, path)
	})
}

// ingest reads and adds one file to the knowledge base.
func (w *Watcher) ingest(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Read %s: %v", path, err)
		return
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	chunks, err := w.retrieval.Ingest(ctx, title, string(content), sourceLabel, nil)
	if err != nil {
		logger.Warn("Ingest %s: %v", path, err)
		return
	}
	logger.Info("Ingested %q (%d chunks)", title, chunks)
}

// shouldIngest reports whether the path is a visible text document.
func shouldIngest(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".txt", ".md":
	default:
		return false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return true
}
