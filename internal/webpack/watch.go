package webpack

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kcmaker-dev/kcmaker/internal/ctxlog"
	"github.com/kcmaker-dev/kcmaker/internal/runtime"
)

// registryDebounce groups the burst of events an editor or an atomic
// replace produces into one change notification.
const registryDebounce = 100 * time.Millisecond

// Watch runs webpack in watch mode and calls onResult after every
// compilation until ctx is cancelled. Cancellation is not an error.
func (b *Bundler) Watch(ctx context.Context, cfg *Config, onResult func(*Result)) error {
	logger := ctxlog.FromContext(ctx)

	p, err := b.prepare(cfg)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(b.Layout.WorkDir); err != nil {
		return fmt.Errorf("watching %s: %w", b.Layout.WorkDir, err)
	}

	runErr := make(chan error, 1)
	go func() {
		_, err := b.Runner.Run(ctx, runtime.Command{
			Name: b.nodeBin(),
			Args: b.watchArgs(p),
			Dir:  b.Layout.Root,
		})
		runErr <- err
	}()

	offset := 0
	drain := func() {
		data, err := os.ReadFile(p.stats)
		if err != nil {
			logger.Warn("reading webpack stats", "err", err)
			return
		}
		if len(data) < offset {
			offset = 0
		}
		results, n, err := parseStats(data[offset:])
		offset += n
		for _, r := range results {
			onResult(r)
		}
		if err != nil {
			logger.Warn("skipping malformed webpack stats", "err", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			<-runErr
			drain()
			return nil
		case err := <-runErr:
			drain()
			if ctx.Err() != nil {
				return nil
			}
			if err == nil {
				return errors.New("webpack watch exited unexpectedly")
			}
			return fmt.Errorf("webpack watch: %w", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == p.stats && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				drain()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "err", err)
		}
	}
}

// WatchRegistry calls onChange whenever the file at path is written or
// replaced, until ctx is cancelled. The parent directory must exist.
func WatchRegistry(ctx context.Context, path string, onChange func()) error {
	logger := ctxlog.FromContext(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	target := filepath.Clean(path)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(registryDebounce)
			} else {
				timer.Reset(registryDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			logger.Debug("registry changed", "path", path)
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("registry watcher error", "err", err)
		}
	}
}

// Serve runs Watch with the config returned by assemble and restarts it
// with a freshly assembled config whenever registryPath changes, so the
// injected app configuration stays current.
func (b *Bundler) Serve(ctx context.Context, registryPath string, assemble func(context.Context) (*Config, error), onResult func(*Result)) error {
	logger := ctxlog.FromContext(ctx)

	changes := make(chan struct{}, 1)
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- WatchRegistry(ctx, registryPath, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	}()

	for {
		cfg, err := assemble(ctx)
		if err != nil {
			return err
		}

		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- b.Watch(runCtx, cfg, onResult) }()

		select {
		case <-ctx.Done():
			cancel()
			<-done
			return nil
		case <-changes:
			logger.Info("app configuration changed, restarting webpack", "path", registryPath)
			cancel()
			if err := <-done; err != nil {
				return err
			}
		case err := <-done:
			cancel()
			return err
		case err := <-watchErr:
			cancel()
			<-done
			if err != nil {
				return err
			}
			return nil
		}
	}
}
