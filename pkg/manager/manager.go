// Package manager drives pacman-style package managers: the distribution's
// native tool and an auxiliary helper that also reaches community
// repositories. Both accept the same -S/-Q operation flags.
package manager

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Manager is one package manager executable.
type Manager struct {
	Name   string
	runner runner.Runner
}

// New returns a manager invoking the executable name through r.
func New(name string, r runner.Runner) *Manager {
	return &Manager{Name: name, runner: r}
}

// Search reports whether a search for name finds a package whose qualified
// name ("repo/name") ends with name. A failed or unrunnable search is
// PACKAGE_NOT_FOUND wrapping the cause.
func (m *Manager) Search(ctx context.Context, name string) (bool, error) {
	logger := logging.GetLogger("manager").With().Str("manager", m.Name).Str("package", name).Logger()

	res, err := m.runner.Run(ctx, m.Name, "-Ss", name)
	if err == nil {
		err = res.Check()
	}
	if err != nil {
		logger.Debug().Err(err).Msg("Package search failed")
		return false, errors.Wrapf(err, errors.ErrPackageNotFound, "package %s not found via %s", name, m.Name).
			WithDetail("package", name).
			WithDetail("manager", m.Name)
	}

	found := false
	for _, line := range lines(res.Stdout) {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.HasSuffix(fields[0], name) {
			found = true
			break
		}
	}
	logger.Debug().Bool("found", found).Msg("Package search finished")
	return found, nil
}

// Info runs the detailed package query. The caller inspects the exit code:
// zero means the package is known to this manager.
func (m *Manager) Info(ctx context.Context, name string) (runner.Result, error) {
	return m.runner.Run(ctx, m.Name, "-Si", name)
}

// ListInstalled returns installed package names, only explicitly installed
// ones when explicitOnly is set.
func (m *Manager) ListInstalled(ctx context.Context, explicitOnly bool) ([]string, error) {
	flag := "-Q"
	if explicitOnly {
		flag = "-Qe"
	}
	res, err := m.runner.Run(ctx, m.Name, flag)
	if err := runner.Check(res, err); err != nil {
		return nil, err
	}
	return ParsePackageList(res.Stdout), nil
}

// Install installs names in one batch, skipping anything already
// up to date, without prompting. Output goes to the operator's terminal.
func (m *Manager) Install(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	return runner.Check(m.runner.Stream(ctx, m.Name, InstallArgs(names)...))
}

// InstallArgs is the argument list of a batch install.
func InstallArgs(names []string) []string {
	return append([]string{"-S", "--needed", "--noconfirm"}, names...)
}

// ParsePackageList takes the first whitespace-separated token of each
// non-blank line of a "-Q" listing.
func ParsePackageList(out []byte) []string {
	names := []string{}
	for _, line := range lines(out) {
		if fields := strings.Fields(line); len(fields) > 0 {
			names = append(names, fields[0])
		}
	}
	return names
}

func lines(out []byte) []string {
	var result []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result
}
