package testutil

import (
	"context"
	"strings"
	"sync"

	dserrors "github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Call is one recorded invocation.
type Call struct {
	Name   string
	Args   []string
	Stream bool
}

// CommandLine joins name and args with single spaces.
func (c Call) CommandLine() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Response scripts the outcome of a matching invocation.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// StartErr simulates a binary that cannot be started.
	StartErr bool
}

// FakeRunner implements runner.Runner from scripted responses. Responses are
// keyed by whole-word command-line prefix; the longest matching prefix wins. Unmatched
// invocations succeed with empty output.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

// NewFakeRunner returns a runner with no scripted responses.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]Response)}
}

// On scripts the response for every command line starting with prefix.
func (f *FakeRunner) On(prefix string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[prefix] = resp
	return f
}

func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (runner.Result, error) {
	return f.invoke(Call{Name: name, Args: args})
}

func (f *FakeRunner) Stream(ctx context.Context, name string, args ...string) (runner.Result, error) {
	return f.invoke(Call{Name: name, Args: args, Stream: true})
}

func (f *FakeRunner) invoke(call Call) (runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)

	line := call.CommandLine()
	var (
		best  Response
		bestN = -1
	)
	for prefix, resp := range f.responses {
		if matchesPrefix(line, prefix) && len(prefix) > bestN {
			best, bestN = resp, len(prefix)
		}
	}

	res := runner.Result{
		Name:     call.Name,
		Args:     call.Args,
		ExitCode: best.ExitCode,
		Stdout:   []byte(best.Stdout),
		Stderr:   []byte(best.Stderr),
	}
	if best.StartErr {
		res.ExitCode = 127
		return res, dserrors.Newf(dserrors.ErrExternalTool, "could not start %s", call.Name)
	}
	return res, nil
}

// matchesPrefix matches whole words only, so "pacman -Si htop" does not
// match "pacman -Si htop-extra".
func matchesPrefix(line, prefix string) bool {
	return line == prefix || strings.HasPrefix(line, prefix+" ")
}

// Calls returns a copy of all recorded invocations in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CommandLines returns the recorded invocations as joined strings.
func (f *FakeRunner) CommandLines() []string {
	var lines []string
	for _, c := range f.Calls() {
		lines = append(lines, c.CommandLine())
	}
	return lines
}

// CallsTo returns the recorded invocations of the named binary.
func (f *FakeRunner) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps scripted responses.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

var _ runner.Runner = (*FakeRunner)(nil)
