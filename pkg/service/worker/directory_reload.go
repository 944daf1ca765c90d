package worker

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/service/directory"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

// DirectoryReloadWorker keeps the directory snapshot in sync with the
// spreadsheets on disk: a periodic refresh plus a filesystem watch so an
// updated .xlsx takes effect without waiting for the next tick.
//
// Architecture assumptions:
// - Single server instance (no distributed coordination)
// - A failed reload keeps the previous snapshot (graceful degradation)
type DirectoryReloadWorker struct {
	svc      *directory.Service
	dataDir  string
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewDirectoryReloadWorker creates a worker refreshing the given service
func NewDirectoryReloadWorker(svc *directory.Service, dataDir string, interval time.Duration) *DirectoryReloadWorker {
	return &DirectoryReloadWorker{
		svc:      svc,
		dataDir:  dataDir,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start performs the initial load synchronously (a bot without a directory
// is useless), then begins the background refresh loop.
func (w *DirectoryReloadWorker) Start(ctx context.Context) error {
	n, err := w.svc.Reload(ctx)
	if err != nil {
		return goerr.Wrap(err, "initial directory load failed")
	}
	logging.From(ctx).Info("Directory reload worker starting",
		"departments", n, "interval", w.interval.String())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return goerr.Wrap(err, "failed to create filesystem watcher")
	}
	if err := watcher.Add(w.dataDir); err != nil {
		_ = watcher.Close()
		return goerr.Wrap(err, "failed to watch data directory", goerr.V("dir", w.dataDir))
	}

	go w.run(ctx, watcher)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *DirectoryReloadWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *DirectoryReloadWorker) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer close(w.doneCh)
	defer func() { _ = watcher.Close() }()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reload(ctx, "interval")

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if isSpreadsheetChange(ev) {
				logging.From(ctx).Info("spreadsheet change detected", "file", ev.Name, "op", ev.Op.String())
				w.reload(ctx, "fsnotify")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.From(ctx).Error("filesystem watcher error", "error", err.Error())

		case <-w.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

func (w *DirectoryReloadWorker) reload(ctx context.Context, trigger string) {
	n, err := w.svc.Reload(ctx)
	if err != nil {
		logging.From(ctx).Error("directory reload failed (keeping previous snapshot)",
			"trigger", trigger, "error", err.Error())
		return
	}
	logging.From(ctx).Info("directory reloaded", "trigger", trigger, "departments", n)
}

func isSpreadsheetChange(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, "~$") {
		return false
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) ||
		ev.Op.Has(fsnotify.Rename) || ev.Op.Has(fsnotify.Remove)
}
