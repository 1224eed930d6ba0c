package reconcile

import (
	"context"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/logging"
)

// ApplyThemes activates the global look-and-feel package, then the Kvantum
// theme when one is set.
func (rc *Reconciler) ApplyThemes(ctx context.Context, d *descriptor.Descriptor, sr *SectionReport) error {
	logger := logging.GetLogger("reconcile.themes")
	logger.Info().Msg("Applying themes")
	tools := rc.opts.Tools

	if global := d.Themes.Global; global != "" {
		if err := rc.mutate(ctx, sr, "apply global theme "+global, tools.Lookandfeeltool, "-a", global); err != nil {
			return err
		}
	}

	if k := d.Themes.Kvantum; k != nil && *k != "" {
		if err := rc.mutate(ctx, sr, "apply Kvantum theme "+*k, tools.Kvantummanager, "--set", *k); err != nil {
			return err
		}
	}
	return nil
}
