package apply

import (
	"context"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/reconcile"
)

// ApplyOptions defines the options for ApplyDescriptor.
type ApplyOptions struct {
	ConfigPath string
	// Sections limits the run to the named sections. Nil applies all three;
	// an empty name is rejected like any other unknown one.
	Sections   []string
	Reconciler *reconcile.Reconciler
	FS         filesystem.FS
}

// ApplyResult carries the reconciliation report.
type ApplyResult struct {
	Path   string            `json:"path" yaml:"path"`
	Report *reconcile.Report `json:"report" yaml:"report"`
}

// ApplyDescriptor validates the section, loads the descriptor and
// reconciles the system with it. When an applier aborts, the partial result
// is returned together with the error.
func ApplyDescriptor(ctx context.Context, opts ApplyOptions) (*ApplyResult, error) {
	logger := logging.GetLogger("commands.apply")
	logger.Debug().Str("path", opts.ConfigPath).Strs("sections", opts.Sections).Msg("Executing command")

	if _, err := reconcile.SelectSections(opts.Sections...); err != nil {
		return nil, err
	}

	d, err := descriptor.Load(opts.FS, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	report, err := opts.Reconciler.Apply(ctx, d, opts.Sections...)
	if report == nil {
		return nil, err
	}
	return &ApplyResult{Path: opts.ConfigPath, Report: report}, err
}
