package runner

import (
	"fmt"
	"time"
)

// LaunchError means the program could not be started at all.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExitError means the program ran and exited with a non-zero status.
// Its message is the captured standard error, which may be empty.
type ExitError struct {
	Program string
	Code    int
	Stderr  string
}

func (e *ExitError) Error() string { return e.Stderr }

// TimeoutError means the program was killed after exceeding its deadline.
type TimeoutError struct {
	Program string
	After   time.Duration
	Stderr  string
}

func (e *TimeoutError) Error() string {
	if e.After > 0 {
		return fmt.Sprintf("%s timed out after %s", e.Program, e.After)
	}
	return fmt.Sprintf("%s timed out", e.Program)
}
