package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangePage ChangeType = iota
	ChangeConfig
	ChangeAsset
)

// String returns the string representation of the ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangePage:
		return "page"
	case ChangeConfig:
		return "config"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path    string
	Type    ChangeType
	Removed bool
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch, recursively.
	Paths []string

	// Ignore patterns to skip (names, path segments or globs).
	Ignore []string

	// Debounce is the quiet period before changes are reported.
	Debounce time.Duration

	// Logger receives watch errors. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
	".#*",
}

// Watcher reports file changes under a set of directories. Bursts of
// events are coalesced into one callback per debounce window.
type Watcher struct {
	config   WatcherConfig
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	onChange func([]Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	pending map[string]Change
	timer   *time.Timer

	flushMu sync.Mutex
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:  config,
		fsw:     fsw,
		logger:  logger.With("component", "watcher"),
		pending: make(map[string]Change),
	}, nil
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func([]Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start watches until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer w.fsw.Close()

	for _, p := range w.config.Paths {
		if err := w.addRecursive(p); err != nil {
			w.setStopped()
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.setStopped()
			return ctx.Err()
		case <-stopCh:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) setStopped() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
	}
}

// addRecursive watches root and every directory below it.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) || event.Op == fsnotify.Chmod {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("watch directory failed", "path", event.Name, "error", err)
			}
			return
		}
	}

	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = Change{
		Path:    event.Name,
		Type:    classifyChange(event.Name),
		Removed: removed,
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.config.Debounce, w.flush)
	} else {
		w.timer.Reset(w.config.Debounce)
	}
}

// flush reports the pending changes in path order. Callbacks never overlap:
// a flush scheduled while another is running waits for it.
func (w *Watcher) flush() {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	callback := w.onChange
	changes := make([]Change, 0, len(w.pending))
	for _, c := range w.pending {
		changes = append(changes, c)
	}
	w.pending = make(map[string]Change)
	w.mu.Unlock()

	if callback == nil || len(changes) == 0 {
		return
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	callback(changes)
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		if name == pattern {
			return true
		}

		hasPathSep := strings.Contains(pattern, "/")
		if strings.ContainsAny(pattern, "*?[") {
			if hasPathSep {
				if matched, _ := path.Match(pattern, normalized); matched {
					return true
				}
			} else if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}

		if pathHasSegments(normalized, pattern) {
			return true
		}
	}

	return false
}

// pathHasSegments reports whether the segments of pattern appear
// consecutively in p.
func pathHasSegments(p, pattern string) bool {
	pathParts := splitPathSegments(p)
	patternParts := splitPathSegments(pattern)
	if len(patternParts) == 0 || len(patternParts) > len(pathParts) {
		return false
	}

	for i := 0; i <= len(pathParts)-len(patternParts); i++ {
		match := true
		for j := range patternParts {
			if pathParts[i+j] != patternParts[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func splitPathSegments(p string) []string {
	parts := strings.Split(p, "/")
	result := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}

// classifyChange determines the type of change from the file name.
func classifyChange(p string) ChangeType {
	if filepath.Base(p) == "markup.yaml" {
		return ChangeConfig
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml", ".json":
		return ChangePage
	default:
		return ChangeAsset
	}
}
