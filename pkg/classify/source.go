package classify

import (
	"context"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Source is where a package will be installed from.
type Source int

const (
	// SourceNative packages are known to the native manager.
	SourceNative Source = iota
	// SourceAuxiliary packages are unknown to it and go to the helper.
	SourceAuxiliary
	// SourceInspectionFailed means the native manager could not be run,
	// so nothing is known about the package.
	SourceInspectionFailed
)

func (s Source) String() string {
	switch s {
	case SourceNative:
		return "native"
	case SourceAuxiliary:
		return "auxiliary"
	case SourceInspectionFailed:
		return "inspection-failed"
	}
	return "unknown"
}

// Policy decides the fate of packages whose source could not be inspected.
type Policy string

const (
	PolicyAuxiliary Policy = "auxiliary"
	PolicySkip      Policy = "skip"
	PolicyAbort     Policy = "abort"
)

// ParsePolicy accepts "", which selects PolicyAuxiliary.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAuxiliary:
		return PolicyAuxiliary, nil
	case PolicySkip, PolicyAbort:
		return Policy(s), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown inspection failure policy %q", s).
		WithDetail("policy", s)
}

// Inspector runs the native manager's detailed package query.
type Inspector interface {
	Info(ctx context.Context, name string) (runner.Result, error)
}

// Resolver determines the install source of packages.
type Resolver struct {
	native Inspector
}

func NewResolver(native Inspector) *Resolver {
	return &Resolver{native: native}
}

// Resolve queries the native manager once for name.
func (r *Resolver) Resolve(ctx context.Context, name string) Source {
	logger := logging.GetLogger("classify")

	res, err := r.native.Info(ctx, name)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("package", name).Msg("Could not inspect package source")
		return SourceInspectionFailed
	case res.Success():
		return SourceNative
	default:
		logger.Debug().Str("package", name).Int("exit_code", res.ExitCode).Msg("Package unknown to native manager")
		return SourceAuxiliary
	}
}

// Partition is the split of a package list by install source.
type Partition struct {
	Native    []string
	Auxiliary []string
	// Unresolved holds packages dropped under PolicySkip.
	Unresolved []string
}

// Partition resolves every name in order. Under PolicyAbort the first
// inspection failure stops the scan with SOURCE_INSPECTION.
func (r *Resolver) Partition(ctx context.Context, names []string, policy Policy) (Partition, error) {
	p := Partition{Native: []string{}, Auxiliary: []string{}, Unresolved: []string{}}

	for _, name := range names {
		switch r.Resolve(ctx, name) {
		case SourceNative:
			p.Native = append(p.Native, name)
		case SourceAuxiliary:
			p.Auxiliary = append(p.Auxiliary, name)
		case SourceInspectionFailed:
			switch policy {
			case PolicySkip:
				p.Unresolved = append(p.Unresolved, name)
			case PolicyAbort:
				return p, errors.Newf(errors.ErrSourceInspection, "could not determine the source of %s", name).
					WithDetail("package", name)
			default:
				p.Auxiliary = append(p.Auxiliary, name)
			}
		}
	}
	return p, nil
}
