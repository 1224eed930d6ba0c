package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/manager"
)

// ApplyPackages installs every listed package, native ones with the native
// manager and the rest with the auxiliary helper, one batch each. A failed
// batch is recorded and logged; it never stops the other batch and is not
// returned. Only an aborting inspection policy produces an error.
func (rc *Reconciler) ApplyPackages(ctx context.Context, d *descriptor.Descriptor, sr *SectionReport) error {
	logger := logging.GetLogger("reconcile.packages")
	logger.Info().Msg("Installing packages")

	names := Dedupe(d.Packages.Flatten())
	if len(names) == 0 {
		skipped(sr, "no packages listed")
		return nil
	}

	partition, err := rc.resolver.Partition(ctx, names, rc.opts.InspectionPolicy)
	if err != nil {
		sr.add(Action{Description: "resolve package sources", Status: StatusFailed, Error: err.Error()})
		return err
	}
	for _, name := range partition.Unresolved {
		logger.Warn().Str("package", name).Msg("Skipping package with unknown source")
		skipped(sr, fmt.Sprintf("could not determine the source of %s", name))
	}

	rc.installBatch(ctx, sr, rc.native, partition.Native)
	rc.installBatch(ctx, sr, rc.auxiliary, partition.Auxiliary)
	return nil
}

func (rc *Reconciler) installBatch(ctx context.Context, sr *SectionReport, m *manager.Manager, names []string) {
	if len(names) == 0 {
		return
	}
	logger := logging.GetLogger("reconcile.packages")
	description := fmt.Sprintf("install %d package(s) with %s", len(names), m.Name)
	cmdline := strings.Join(append([]string{m.Name}, manager.InstallArgs(names)...), " ")

	if rc.opts.DryRun {
		sr.add(Action{Description: description, Command: cmdline, Status: StatusPlanned})
		return
	}

	logger.Info().Str("manager", m.Name).Strs("packages", names).Msg("Installing batch")
	if err := m.Install(ctx, names); err != nil {
		logger.Error().Err(err).Str("manager", m.Name).Msg("Failed to install some packages")
		sr.add(Action{Description: description, Command: cmdline, Status: StatusFailed, Error: err.Error()})
		return
	}
	sr.add(Action{Description: description, Command: cmdline, Status: StatusDone})
}

// Dedupe drops repeated names, keeping the first occurrence.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

