package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/arthur-debert/methodlog/pkg/config"
	"github.com/arthur-debert/methodlog/pkg/errors"
	"github.com/arthur-debert/methodlog/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces the bursts of events editors produce when
// saving a file
const debounceDelay = 100 * time.Millisecond

// Watcher watches a configuration file and re-loads it when it changes,
// handing each successfully loaded Config to the onChange callback.
// A file that fails to load is reported and skipped, so the callback
// only ever sees complete configurations.
type Watcher struct {
	path     string
	onChange func(*config.Config)
	logger   zerolog.Logger
}

// New creates a watcher for the config file at path. onChange is
// invoked from the watcher's goroutine with each reloaded Config;
// the usual callback installs the new rules via Registry.ReloadChecked.
func New(path string, onChange func(*config.Config)) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		logger:   logging.GetLogger("watcher"),
	}
}

// Run watches until ctx is cancelled. It watches the file's directory
// rather than the file itself, since editors commonly replace the file
// on save.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrWatchSetup, "failed to create file watcher")
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return errors.Wrapf(err, errors.ErrWatchSetup, "failed to watch %s", dir)
	}

	w.logger.Debug().Str("path", w.path).Msg("Watching config file")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(debounceDelay)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// reload loads the config file and hands it to the callback. Load
// failures keep whatever configuration is active.
func (w *Watcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Error().Err(err).Str("path", w.path).
			Msg("Failed to reload config, keeping current configuration")
		return
	}

	w.logger.Info().Str("path", w.path).Int("ruleCount", len(cfg.Rules)).
		Msg("Config file changed, applying")
	w.onChange(cfg)
}
