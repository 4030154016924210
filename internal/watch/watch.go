// Package watch reloads templates when files under a directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the tree must stay quiet before reload runs.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions limits reloads to files with one of exts. Without it every
// file counts.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		for _, ext := range exts {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			w.exts = append(w.exts, ext)
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher calls reload once per burst of changes below root.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	root     string
	reload   func()
	logger   *zap.Logger
	debounce time.Duration
	exts     []string

	lastEvent time.Time
	pending   bool
	reloads   int

	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// New prepares a watcher for root. Nothing is watched until Start.
func New(root string, reload func(), options ...Option) (*Watcher, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("watch: root directory is required")
	}
	if reload == nil {
		return nil, errors.New("watch: reload function is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		root:     root,
		reload:   reload,
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Start adds root and its subdirectories and runs the event loop in a
// goroutine. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("watching templates", zap.String("dir", w.root), zap.Duration("debounce", w.debounce))

	go w.run(ctx)
	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}

// Stop ends the event loop, waits for it and closes the fsnotify watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("closing template watcher", zap.Error(err))
	}
}

// Reloads reports how many times reload has run.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("template watcher error", zap.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watching new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}
	if !w.matches(event.Name) {
		return
	}

	w.logger.Debug("template changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
	w.mu.Lock()
	w.lastEvent = time.Now()
	w.pending = true
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.reloads++
	w.mu.Unlock()

	w.reload()
	w.logger.Info("templates reloaded", zap.String("dir", w.root))
}

func (w *Watcher) matches(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, candidate := range w.exts {
		if ext == candidate {
			return true
		}
	}
	return false
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch: walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}
