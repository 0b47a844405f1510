package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ecairns22/coderunner/internal/config"
	"github.com/ecairns22/coderunner/internal/resolver"
	"github.com/ecairns22/coderunner/internal/runner"
	"github.com/ecairns22/coderunner/internal/state"
	"github.com/ecairns22/coderunner/internal/tokenize"
)

// ErrNoMatch is returned when no tier of the configuration matches a path.
// It is a normal outcome rather than an execution failure.
var ErrNoMatch = errors.New("no matching run command found")

// HistoryStore is the subset of state.Store used to record runs.
type HistoryStore interface {
	AppendRun(ctx context.Context, run *state.Run) error
}

// Orchestrator resolves, tokenizes and executes run commands. It holds no
// mutable state besides its collaborators, so concurrent Run calls are independent.
type Orchestrator struct {
	resolver *resolver.Resolver
	runner   runner.CommandRunner
	history  HistoryStore
	log      *slog.Logger
	now      func() time.Time
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithHistory records every run in h.
func WithHistory(h HistoryStore) Option {
	return func(o *Orchestrator) { o.history = h }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New creates an Orchestrator for an immutable config.
func New(cfg *config.Config, det resolver.ProjectDetector, r runner.CommandRunner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		resolver: resolver.New(cfg, det),
		runner:   r,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// RunRequest holds the parameters of a single run.
type RunRequest struct {
	Path    string
	Root    string        // defaults to the parent of Path
	Timeout time.Duration // 0 waits indefinitely
	DryRun  bool          // resolve and tokenize only
}

// RunResult describes a completed run.
type RunResult struct {
	ID         string
	Resolution *resolver.Resolution
	Tokens     []string
	Dir        string
	Output     string
	Duration   time.Duration
}

// Plan resolves and tokenizes the command for path without running it.
func (o *Orchestrator) Plan(path, root string) (*resolver.Resolution, []string, error) {
	if err := resolver.CheckPath(path); err != nil {
		return nil, nil, err
	}
	if root == "" {
		root = filepath.Dir(path)
	}

	res, ok := o.resolver.Resolve(path, root)
	if !ok {
		return nil, nil, ErrNoMatch
	}

	tokens, err := tokenize.Tokenize(res.Command)
	if err != nil {
		return res, nil, fmt.Errorf("%s template %q: %w", res.Tier, res.Key, err)
	}
	return res, tokens, nil
}

// Run resolves the command for req.Path, executes it in the path's directory
// and returns its standard output. Failures are reported once and never retried.
func (o *Orchestrator) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	start := o.now()
	result := &RunResult{
		ID:  ulid.Make().String(),
		Dir: filepath.Dir(req.Path),
	}
	root := req.Root
	if root == "" {
		root = result.Dir
	}
	log := o.log.With("run", result.ID, "path", req.Path)

	res, tokens, err := o.Plan(req.Path, root)
	result.Resolution = res
	result.Tokens = tokens
	if err == nil && !req.DryRun {
		log.Debug("executing", "tier", res.Tier, "key", res.Key, "command", res.Command, "dir", result.Dir)
		result.Output, err = runner.Execute(ctx, o.runner, tokens, result.Dir, req.Timeout)
	}
	result.Duration = o.now().Sub(start)

	outcome, code := classify(err, req.DryRun)
	switch outcome {
	case state.OutcomeOK, state.OutcomeDryRun:
		log.Info("run finished", "outcome", outcome, "duration", result.Duration)
	case state.OutcomeMiss:
		log.Info("no run command configured", "root", root)
	default:
		log.Info("run failed", "outcome", outcome, "exit_code", code, "error", err)
	}

	o.record(ctx, log, &state.Run{
		ID:        result.ID,
		Path:      req.Path,
		Root:      root,
		Tier:      tierOf(res),
		Command:   commandOf(res),
		Outcome:   outcome,
		ExitCode:  code,
		Message:   summary(err),
		StartedAt: start,
		Duration:  result.Duration,
	})

	return result, err
}

func (o *Orchestrator) record(ctx context.Context, log *slog.Logger, run *state.Run) {
	if o.history == nil {
		return
	}
	if err := o.history.AppendRun(ctx, run); err != nil {
		log.Warn("recording run history", "error", err)
	}
}

func classify(err error, dryRun bool) (state.Outcome, int) {
	var (
		exitErr    *runner.ExitError
		timeoutErr *runner.TimeoutError
	)
	switch {
	case err == nil && dryRun:
		return state.OutcomeDryRun, 0
	case err == nil:
		return state.OutcomeOK, 0
	case errors.Is(err, ErrNoMatch):
		return state.OutcomeMiss, 0
	case errors.Is(err, resolver.ErrPlaceholderInPath):
		return state.OutcomeInvalidPath, 0
	case errors.Is(err, tokenize.ErrEmptyCommand):
		return state.OutcomeTokenizeError, 0
	case errors.As(err, &exitErr):
		return state.OutcomeExitError, exitErr.Code
	case errors.As(err, &timeoutErr):
		return state.OutcomeTimeout, -1
	default:
		return state.OutcomeLaunchError, -1
	}
}

const maxSummary = 200

func summary(err error) string {
	if err == nil {
		return ""
	}
	msg := Message(err)
	if len(msg) > maxSummary {
		msg = strings.ToValidUTF8(msg[:maxSummary], "")
	}
	return msg
}

func tierOf(res *resolver.Resolution) string {
	if res == nil {
		return ""
	}
	return string(res.Tier)
}

func commandOf(res *resolver.Resolution) string {
	if res == nil {
		return ""
	}
	return res.Command
}

// Message renders a Run error as the text shown to the user: the fixed
// miss message, the child's standard error for a non-zero exit (or its exit
// status when it wrote nothing), or the error text otherwise.
func Message(err error) string {
	if errors.Is(err, ErrNoMatch) {
		return "No matching run command found."
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && strings.TrimSpace(exitErr.Stderr) == "" {
		return fmt.Sprintf("%s exited with status %d", exitErr.Program, exitErr.Code)
	}
	return err.Error()
}
