package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single invocation of a command.
type Call struct {
	Dir  string
	Name string
	Args []string
}

func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Response is a pre-configured response for a command pattern.
type Response struct {
	Stdout string
	Stderr string
	Err    error
}

// FakeExit is an error carrying an exit status, standing in for *exec.ExitError.
type FakeExit int

func (e FakeExit) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// ExitCode returns the fake exit status.
func (e FakeExit) ExitCode() int { return int(e) }

// FakeRunner records command calls and returns pre-configured responses.
// Exported for use by resolver and orchestrator tests.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Call
	responses map[string]Response // key: "name arg1 arg2..."
	fallback  Response
}

// NewFakeRunner creates a FakeRunner whose fallback response is a silent success.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Response),
	}
}

// SetResponse configures a response for a specific command string.
func (f *FakeRunner) SetResponse(cmd string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = resp
}

// SetFallback sets the default response for unmatched commands.
func (f *FakeRunner) SetFallback(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = resp
}

// Run records the call and returns the matching response.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)

	key := call.String()
	if resp, ok := f.responses[key]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	// Try matching just the command name with first arg for broader matches
	if len(args) > 0 {
		partial := name + " " + args[0]
		if resp, ok := f.responses[partial]; ok {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if resp, ok := f.responses[name]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	return f.fallback.Stdout, f.fallback.Stderr, f.fallback.Err
}

// Called returns true if a command matching the prefix was recorded.
func (f *FakeRunner) Called(prefix string) bool {
	return f.CallCount(prefix) > 0
}

// CallCount returns the number of times a command matching the prefix was called.
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// LastCall returns the most recent call, or false if there were none.
func (f *FakeRunner) LastCall() (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Call{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}

// Reset clears all recorded calls.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

var _ CommandRunner = (*FakeRunner)(nil)
var _ CommandRunner = (*OSRunner)(nil)
