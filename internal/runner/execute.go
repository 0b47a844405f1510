package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// exitCoder is implemented by *exec.ExitError and FakeExit.
type exitCoder interface {
	ExitCode() int
}

// Execute runs tokens[0] with the remaining tokens as arguments in dir and
// classifies the outcome. On exit status zero it returns standard output.
// Otherwise the error is a *ExitError, *LaunchError or *TimeoutError.
// A zero timeout waits indefinitely.
func Execute(ctx context.Context, r CommandRunner, tokens []string, dir string, timeout time.Duration) (string, error) {
	if len(tokens) == 0 {
		return "", &LaunchError{Err: errors.New("no program to run")}
	}
	if dir == "" {
		dir = "."
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	prog := tokens[0]
	stdout, stderr, err := r.Run(ctx, dir, prog, tokens[1:]...)
	if err == nil {
		return lossy(stdout), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", &TimeoutError{Program: prog, After: timeout, Stderr: lossy(stderr)}
		}
		return "", fmt.Errorf("running %s: %w", prog, ctxErr)
	}

	// Wait only reports ErrWaitDelay when the child itself exited 0; a
	// background grandchild kept the pipes open past the delay.
	if errors.Is(err, exec.ErrWaitDelay) {
		return lossy(stdout), nil
	}

	// A signal-killed process reports -1 but still ran.
	var ec exitCoder
	if errors.As(err, &ec) {
		return "", &ExitError{Program: prog, Code: ec.ExitCode(), Stderr: lossy(stderr)}
	}
	return "", &LaunchError{Program: prog, Err: err}
}

func lossy(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
