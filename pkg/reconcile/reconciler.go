// Package reconcile brings the live system in line with a descriptor.
//
// Three appliers run in a fixed order: system (shell, locale, timezone,
// keyboard), packages and themes. The system and theme appliers stop at
// their first failure. The package applier installs in two batches, native
// and auxiliary, and records a failed batch without aborting.
package reconcile

import (
	"context"
	"os"
	"strings"

	"github.com/arthur-debert/deskset/pkg/classify"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/manager"
	"github.com/arthur-debert/deskset/pkg/runner"
	"github.com/google/uuid"
)

// Tools names the executables the appliers run.
type Tools struct {
	Chsh            string
	LocaleGen       string
	Timedatectl     string
	Setxkbmap       string
	Lookandfeeltool string
	Kvantummanager  string
}

// DefaultTools are the stock executable names.
func DefaultTools() Tools {
	return Tools{
		Chsh:            "chsh",
		LocaleGen:       "locale-gen",
		Timedatectl:     "timedatectl",
		Setxkbmap:       "setxkbmap",
		Lookandfeeltool: "lookandfeeltool",
		Kvantummanager:  "kvantummanager",
	}
}

type Options struct {
	// ShellDir prefixes the shell name passed to chsh.
	ShellDir string
	// LocaleGenFile is the locale generation manifest.
	LocaleGenFile    string
	Tools            Tools
	InspectionPolicy classify.Policy
	// DryRun records mutating actions as planned instead of running them.
	DryRun bool
}

// Config wires a Reconciler.
type Config struct {
	Runner   runner.Runner
	FS       filesystem.FS
	Env      func(string) (string, bool)
	Registry *manager.Registry
	Options  Options
}

type Reconciler struct {
	runner    runner.Runner
	fs        filesystem.FS
	env       func(string) (string, bool)
	resolver  *classify.Resolver
	native    *manager.Manager
	auxiliary *manager.Manager
	opts      Options
}

func New(cfg Config) *Reconciler {
	if cfg.Env == nil {
		cfg.Env = os.LookupEnv
	}
	if cfg.Options.ShellDir == "" {
		cfg.Options.ShellDir = "/bin"
	}
	if cfg.Options.LocaleGenFile == "" {
		cfg.Options.LocaleGenFile = "/etc/locale.gen"
	}
	if cfg.Options.Tools == (Tools{}) {
		cfg.Options.Tools = DefaultTools()
	}
	if cfg.Options.InspectionPolicy == "" {
		cfg.Options.InspectionPolicy = classify.PolicyAuxiliary
	}
	return &Reconciler{
		runner:    cfg.Runner,
		fs:        cfg.FS,
		env:       cfg.Env,
		resolver:  classify.NewResolver(cfg.Registry.Native()),
		native:    cfg.Registry.Native(),
		auxiliary: cfg.Registry.Auxiliary(),
		opts:      cfg.Options,
	}
}

// Apply runs the named sections in apply order, or all of them when none
// is named. An unknown section fails before anything runs. The report is
// returned even when an applier fails.
func (rc *Reconciler) Apply(ctx context.Context, d *descriptor.Descriptor, names ...string) (*Report, error) {
	sections, err := SelectSections(names...)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString(), DryRun: rc.opts.DryRun}
	logger := logging.GetLogger("reconcile").With().Str("run_id", report.RunID).Logger()
	logger.Info().Bool("dry_run", rc.opts.DryRun).Int("sections", len(sections)).Msg("Starting apply")

	for _, s := range sections {
		sr := SectionReport{Section: s, Actions: []Action{}}
		var err error
		switch s {
		case SectionSystem:
			err = rc.ApplySystem(ctx, d, &sr)
		case SectionPackages:
			err = rc.ApplyPackages(ctx, d, &sr)
		case SectionThemes:
			err = rc.ApplyThemes(ctx, d, &sr)
		}
		report.Sections = append(report.Sections, sr)
		if err != nil {
			logger.Error().Err(err).Str("section", s.String()).Msg("Apply aborted")
			return report, err
		}
	}

	logger.Info().
		Int("done", report.Count(StatusDone)).
		Int("planned", report.Count(StatusPlanned)).
		Int("failed", report.Count(StatusFailed)).
		Msg("Apply finished")
	return report, nil
}

// mutate runs a system-changing command attached to the terminal, or only
// records it in dry-run mode.
func (rc *Reconciler) mutate(ctx context.Context, sr *SectionReport, description, name string, args ...string) error {
	cmdline := strings.Join(append([]string{name}, args...), " ")
	if rc.opts.DryRun {
		sr.add(Action{Description: description, Command: cmdline, Status: StatusPlanned})
		return nil
	}

	if err := runner.Check(rc.runner.Stream(ctx, name, args...)); err != nil {
		sr.add(Action{Description: description, Command: cmdline, Status: StatusFailed, Error: err.Error()})
		return err
	}
	sr.add(Action{Description: description, Command: cmdline, Status: StatusDone})
	return nil
}

func skipped(sr *SectionReport, description string) {
	sr.add(Action{Description: description, Status: StatusSkipped})
}
