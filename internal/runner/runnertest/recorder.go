// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kickstartjs/kickstart/internal/runner"
)

// Call records one command invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a command line.
func (c Call) String() string {
	return runner.String(c.Name, c.Args...)
}

// Response is the scripted result for a command line.
type Response struct {
	Stdout string
	Err    error

	// Do runs before the response is returned, e.g. to create files.
	Do func(dir string)
}

// Recorder is a runner.Runner that records calls and replies from a script.
// Commands without a scripted response succeed with empty output.
type Recorder struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]Response
	handlers  map[string]Handler
}

// Handler computes a response from the call, for commands whose arguments
// are not known up front.
type Handler func(dir string, args []string) Response

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		responses: make(map[string]Response),
		handlers:  make(map[string]Handler),
	}
}

// On scripts the response for an exact command line such as "pnpm --version".
func (r *Recorder) On(commandLine string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[commandLine] = resp
	return r
}

// OnAny handles every call to the named executable that has no exact response.
func (r *Recorder) OnAny(name string, h Handler) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
	return r
}

// Fail scripts a failing command line.
func (r *Recorder) Fail(commandLine, stderr string) *Recorder {
	fields := strings.Fields(commandLine)
	return r.On(commandLine, Response{Err: &runner.CommandError{
		Command:  commandLine,
		ExitCode: 1,
		Stderr:   stderr,
		Err:      fmt.Errorf("%s: exit status 1", fields[0]),
	}})
}

// Output implements runner.Runner.
func (r *Recorder) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	resp := r.record(dir, name, args)
	return resp.Stdout, resp.Err
}

// Run implements runner.Runner.
func (r *Recorder) Run(_ context.Context, dir, name string, args ...string) error {
	return r.record(dir, name, args).Err
}

func (r *Recorder) record(dir, name string, args []string) Response {
	r.mu.Lock()
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	r.calls = append(r.calls, call)
	resp, ok := r.responses[call.String()]
	handler := r.handlers[name]
	r.mu.Unlock()

	if !ok && handler != nil {
		return handler(dir, call.Args)
	}

	if resp.Do != nil {
		resp.Do(dir)
	}
	return resp
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CommandLines returns the recorded calls rendered as command lines.
func (r *Recorder) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Count returns how many times the exact command line was invoked.
func (r *Recorder) Count(commandLine string) int {
	n := 0
	for _, line := range r.CommandLines() {
		if line == commandLine {
			n++
		}
	}
	return n
}

var _ runner.Runner = (*Recorder)(nil)
