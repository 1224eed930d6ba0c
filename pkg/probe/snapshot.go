package probe

import (
	"context"

	"github.com/arthur-debert/deskset/pkg/classify"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/logging"
)

// Snapshot builds a descriptor describing the running system. Undetected
// values stay empty, or at their defaults for locale settings; nothing here
// is fatal.
func (p *Probe) Snapshot(ctx context.Context, mode Mode) *descriptor.Descriptor {
	logger := logging.GetLogger("probe")
	done := logging.LogOperationStart(logger, "snapshot")
	defer done()

	d := descriptor.New()

	if v, ok := p.Shell(); ok {
		d.System.Shell = v
	} else {
		logger.Warn().Msg("Could not detect shell")
	}
	if v, ok := p.DesktopEnvironment(ctx); ok {
		d.System.DesktopEnvironment = v
	} else {
		logger.Warn().Msg("Could not detect desktop environment")
	}
	if v, ok := p.Terminal(ctx); ok {
		d.System.Terminal = v
	} else {
		logger.Warn().Msg("Could not detect terminal")
	}
	if v, ok := p.TerminalFont(); ok {
		d.System.TerminalFont = v
	}

	if v, ok := p.Language(ctx); ok {
		d.Locale.Language = v
	} else {
		logger.Debug().Str("default", d.Locale.Language).Msg("Could not detect language, keeping default")
	}
	if v, ok := p.Timezone(); ok {
		d.Locale.Timezone = v
	} else {
		logger.Debug().Str("default", d.Locale.Timezone).Msg("Could not detect timezone, keeping default")
	}
	if v, ok := p.KeyboardLayout(ctx); ok {
		d.Locale.KeyboardLayout = v
	} else {
		logger.Debug().Str("default", d.Locale.KeyboardLayout).Msg("Could not detect keyboard layout, keeping default")
	}

	if names, ok := p.InstalledPackages(ctx, mode); ok {
		d.Packages = classify.CategorizeAll(names)
		logger.Info().Int("packages", len(names)).Msg("Recorded installed packages")
	} else {
		logger.Warn().Msg("Could not list installed packages")
	}

	return d
}
