// Package watch rebuilds the controls profiles whenever one of their files
// changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Slayer366/gptokeyb2/internal/config"
)

const defaultDebounce = 100 * time.Millisecond

// Reloader loads a list of controls files into a fresh store and publishes a
// snapshot every time the result changes.
type Reloader struct {
	paths      []string
	configOnly bool
	storeOpts  []config.StoreOption
	logger     *log.Logger
	debug      bool
	debounce   time.Duration

	state   config.StoreView
	dump    string
	loaded  bool
	changes chan config.StoreView
	mu      sync.RWMutex
}

// Option configures a Reloader.
type Option func(*Reloader)

// WithLogger sets the logger for reload errors. It is also handed to every
// store the reloader builds.
func WithLogger(l *log.Logger) Option {
	return func(r *Reloader) {
		r.logger = l
	}
}

// WithDebug logs file events and the ignored input of every load.
func WithDebug(debug bool) Option {
	return func(r *Reloader) {
		r.debug = debug
	}
}

// WithDebounce sets how long the reloader waits for a burst of file events
// to settle.
func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) {
		r.debounce = d
	}
}

// WithStoreOptions adds options applied to every store the reloader builds.
func WithStoreOptions(opts ...config.StoreOption) Option {
	return func(r *Reloader) {
		r.storeOpts = append(r.storeOpts, opts...)
	}
}

// NewReloader returns a reloader for paths, loaded in order. Nothing is read
// until Reload or Run is called.
func NewReloader(paths []string, configOnly bool, opts ...Option) *Reloader {
	r := &Reloader{
		paths:      paths,
		configOnly: configOnly,
		logger:     log.Default(),
		debounce:   defaultDebounce,
		changes:    make(chan config.StoreView, 16),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Changes returns the channel on which new snapshots are sent.
func (r *Reloader) Changes() <-chan config.StoreView {
	return r.changes
}

// CurrentState returns the snapshot of the last successful load.
func (r *Reloader) CurrentState() config.StoreView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Dump returns the text dump of the last successful load.
func (r *Reloader) Dump() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dump
}

// Reload builds a new store from every path. On failure the previous state is
// kept and nothing is emitted.
func (r *Reloader) Reload() (config.StoreView, error) {
	var fatal error
	opts := append([]config.StoreOption{
		config.WithLogger(r.logger),
		config.WithDebug(r.debug),
	}, r.storeOpts...)
	opts = append(opts, config.WithFatalHandler(func(err error) {
		if fatal == nil {
			fatal = err
		}
	}))

	store := config.NewStore(opts...)
	defer store.Close()

	loader := config.NewLoader(store)
	for _, path := range r.paths {
		if err := loader.LoadFile(path, r.configOnly); err != nil {
			return r.CurrentState(), err
		}
		if fatal != nil {
			return r.CurrentState(), fmt.Errorf("load %s: %w", path, fatal)
		}
	}

	view := store.Snapshot()
	dump := store.DumpString()

	r.mu.Lock()
	changed := !r.loaded || !config.ComputeDelta(r.state, view).IsEmpty()
	r.state = view
	r.dump = dump
	r.loaded = true
	r.mu.Unlock()

	if changed {
		r.emitState(view)
	}
	return view, nil
}

// Run loads the files once, then reloads them on every change until ctx is
// cancelled. The directories holding the files are watched so that editors
// replacing a file by rename are noticed.
func (r *Reloader) Run(ctx context.Context) error {
	if _, err := r.Reload(); err != nil {
		r.logger.Printf("Reload failed: %v", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	files := make(map[string]bool, len(r.paths))
	dirs := make(map[string]bool)
	for _, path := range r.paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			if r.debug {
				r.logger.Printf("[DEBUG] %s: %s", ev.Op, ev.Name)
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				fire = time.After(0)
				continue
			}
			r.logger.Printf("Watch error: %v", err)

		case <-fire:
			fire = nil
			if _, err := r.Reload(); err != nil {
				r.logger.Printf("Reload failed: %v", err)
			}
		}
	}
}

func (r *Reloader) emitState(view config.StoreView) {
	select {
	case r.changes <- view:
	default:
		// Drop if the channel is full; the next full sync catches up
	}
}
