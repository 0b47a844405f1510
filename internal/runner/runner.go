package runner

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait keeps reading output once the child is done,
// in case grandchildren still hold the pipes. It only applies to runs with a
// deadline; without one, Wait drains the pipes until every writer closes them.
const waitDelay = 2 * time.Second

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)
}

// OSRunner executes commands via os/exec, without a shell.
type OSRunner struct{}

// Run launches name in dir and blocks until it exits. Both streams are
// captured into separate buffers; os/exec copies them concurrently.
func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if _, ok := ctx.Deadline(); ok {
		cmd.WaitDelay = waitDelay
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}
