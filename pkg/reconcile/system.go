package reconcile

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
)

// ApplySystem sets the login shell, enables and generates the locale, and
// sets the timezone and keyboard layout. Empty settings are left alone.
func (rc *Reconciler) ApplySystem(ctx context.Context, d *descriptor.Descriptor, sr *SectionReport) error {
	logger := logging.GetLogger("reconcile.system")
	logger.Info().Msg("Applying system configuration")
	tools := rc.opts.Tools

	if shell := d.System.Shell; shell != "" {
		current, _ := rc.env("SHELL")
		if path.Base(current) == shell {
			skipped(sr, fmt.Sprintf("login shell is already %s", shell))
		} else {
			target := path.Join(rc.opts.ShellDir, shell)
			if err := rc.mutate(ctx, sr, "change login shell to "+target, tools.Chsh, "-s", target); err != nil {
				return err
			}
		}
	}

	if lang := d.Locale.Language; lang != "" {
		if err := rc.enableLocale(sr, lang); err != nil {
			return err
		}
		if err := rc.mutate(ctx, sr, "generate locales", tools.LocaleGen); err != nil {
			return err
		}
	}

	if tz := d.Locale.Timezone; tz != "" {
		if err := rc.mutate(ctx, sr, "set timezone to "+tz, tools.Timedatectl, "set-timezone", tz); err != nil {
			return err
		}
	}

	if layout := d.Locale.KeyboardLayout; layout != "" {
		if err := rc.mutate(ctx, sr, "set keyboard layout to "+layout, tools.Setxkbmap, layout); err != nil {
			return err
		}
	}
	return nil
}

func (rc *Reconciler) enableLocale(sr *SectionReport, lang string) error {
	file := rc.opts.LocaleGenFile
	description := fmt.Sprintf("enable %s in %s", lang, file)

	info, err := rc.fs.Stat(file)
	if err != nil {
		sr.add(Action{Description: description, Status: StatusFailed, Error: err.Error()})
		return errors.Wrapf(err, errors.ErrSystemFile, "cannot read %s", file).WithDetail("path", file)
	}
	content, err := rc.fs.ReadFile(file)
	if err != nil {
		sr.add(Action{Description: description, Status: StatusFailed, Error: err.Error()})
		return errors.Wrapf(err, errors.ErrSystemFile, "cannot read %s", file).WithDetail("path", file)
	}

	updated, changed := UncommentLocale(string(content), lang)
	switch {
	case !changed:
		skipped(sr, fmt.Sprintf("%s already enabled in %s", lang, file))
	case rc.opts.DryRun:
		sr.add(Action{Description: description, Status: StatusPlanned})
	default:
		if err := rc.fs.WriteFile(file, []byte(updated), info.Mode().Perm()); err != nil {
			sr.add(Action{Description: description, Status: StatusFailed, Error: err.Error()})
			return errors.Wrapf(err, errors.ErrSystemFile, "cannot write %s", file).WithDetail("path", file)
		}
		sr.add(Action{Description: description, Status: StatusDone})
	}
	return nil
}

// UncommentLocale strips one leading '#' from every commented line of a
// locale.gen manifest that mentions lang. Active lines and unrelated
// comments are untouched. changed reports whether any line was rewritten.
func UncommentLocale(content, lang string) (updated string, changed bool) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") && strings.Contains(line, lang) {
			lines[i] = line[1:]
			changed = true
		}
	}
	return strings.Join(lines, "\n"), changed
}
