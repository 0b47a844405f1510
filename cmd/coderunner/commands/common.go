package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecairns22/coderunner/internal/config"
	"github.com/ecairns22/coderunner/internal/detect"
	"github.com/ecairns22/coderunner/internal/orchestrator"
	"github.com/ecairns22/coderunner/internal/runner"
	"github.com/ecairns22/coderunner/internal/state"
)

const historyEnv = "CODERUNNER_HISTORY"

// historyPath returns where run history is kept.
func historyPath() (string, error) {
	if p := os.Getenv(historyEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache dir: %w", err)
	}
	return filepath.Join(dir, "coderunner", "history.db"), nil
}

func openHistory() (*state.Store, error) {
	path, err := historyPath()
	if err != nil {
		return nil, err
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}
	return state.Open(path)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(g *globalFlags, log *slog.Logger) (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFrom(g.configPath)
	}
	cfg, path, err := config.Load()
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded", "path", path)
	return cfg, nil
}

// buildOrchestrator loads config and wires the orchestrator. The caller is
// responsible for calling the returned cleanup function.
func buildOrchestrator(g *globalFlags, stderr io.Writer, withHistory bool) (*orchestrator.Orchestrator, func(), error) {
	log := newLogger(stderr, g.verbose)

	cfg, err := loadConfig(g, log)
	if err != nil {
		return nil, nil, err
	}

	opts := []orchestrator.Option{orchestrator.WithLogger(log)}
	cleanup := func() {}
	if withHistory {
		store, err := openHistory()
		if err != nil {
			// History is best effort; running still works without it.
			log.Warn("run history disabled", "error", err)
		} else {
			opts = append(opts, orchestrator.WithHistory(store))
			cleanup = func() { store.Close() }
		}
	}

	orc := orchestrator.New(cfg, detect.New(nil), &runner.OSRunner{}, opts...)
	return orc, cleanup, nil
}

// userError presents a run failure as the text the user should see.
type userError struct {
	err error
}

func (e *userError) Error() string {
	return strings.TrimRight(orchestrator.Message(e.err), "\n")
}

func (e *userError) Unwrap() error { return e.err }
