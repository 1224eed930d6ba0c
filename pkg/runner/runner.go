package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	dserrors "github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
)

// Result is the outcome of a finished process.
type Result struct {
	Name     string
	Args     []string
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// CommandLine renders the invocation for logs and reports.
func (r Result) CommandLine() string {
	return strings.Join(append([]string{r.Name}, r.Args...), " ")
}

// Check converts a non-zero exit into an EXTERNAL_TOOL error.
func (r Result) Check() error {
	if r.Success() {
		return nil
	}
	msg := strings.TrimSpace(string(r.Stderr))
	err := dserrors.Newf(dserrors.ErrExternalTool, "%s exited with status %d", r.CommandLine(), r.ExitCode).
		WithDetail("command", r.Name).
		WithDetail("exit_code", r.ExitCode)
	if msg != "" {
		err.WithDetail("stderr", msg)
	}
	return err
}

// Check folds a start failure and a non-zero exit into a single error.
func Check(res Result, err error) error {
	if err != nil {
		return err
	}
	return res.Check()
}

// Runner starts external processes.
type Runner interface {
	// Run captures stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (Result, error)
	// Stream attaches the process to the operator's terminal.
	Stream(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands on the local host via os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res, err := finish(cmd.Run(), name, args)
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()
	return res, err
}

func (r *ExecRunner) Stream(ctx context.Context, name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	return finish(cmd.Run(), name, args)
}

func finish(runErr error, name string, args []string) (Result, error) {
	res := Result{Name: name, Args: args}
	if runErr == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = 127
	return res, dserrors.Wrap(runErr, dserrors.ErrExternalTool, fmt.Sprintf("could not start %s", name)).
		WithDetail("command", name)
}
