// Package display turns command results into tables and lines shared by
// the terminal, text and markdown renderers.
package display

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Unset is shown for empty descriptor values.
const Unset = "(unset)"

// Field is one labelled descriptor value.
type Field struct {
	Label string
	Value string
}

// Value renders an empty string as Unset.
func Value(s string) string {
	if s == "" {
		return Unset
	}
	return s
}

// SystemFields lists the system settings in document order.
func SystemFields(d *descriptor.Descriptor) []Field {
	s := d.System
	return []Field{
		{"shell", Value(s.Shell)},
		{"desktop environment", Value(s.DesktopEnvironment)},
		{"terminal", Value(s.Terminal)},
		{"terminal font", Value(s.TerminalFont)},
		{"icons", Value(s.Icons)},
		{"theme", Value(s.Theme)},
		{"splash screen", Value(s.SplashScreen)},
		{"login screen", Value(s.LoginScreen)},
	}
}

// LocaleFields lists the locale settings.
func LocaleFields(d *descriptor.Descriptor) []Field {
	return []Field{
		{"language", Value(d.Locale.Language)},
		{"timezone", Value(d.Locale.Timezone)},
		{"keyboard layout", Value(d.Locale.KeyboardLayout)},
	}
}

// ThemeFields lists the theme settings. An absent Kvantum theme is shown
// as unmanaged.
func ThemeFields(d *descriptor.Descriptor) []Field {
	kvantum := "(not managed)"
	if d.Themes.Kvantum != nil {
		kvantum = Value(*d.Themes.Kvantum)
	}
	return []Field{
		{"global", Value(d.Themes.Global)},
		{"kvantum", kvantum},
	}
}

// FieldTable lays fields out as a two-column table.
func FieldTable(title string, fields []Field) table.Writer {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Setting", "Value"})
	for _, f := range fields {
		t.AppendRow(table.Row{f.Label, f.Value})
	}
	return t
}

// ManifestTable has one row per bucket in flatten order.
func ManifestTable(m descriptor.PackageManifest) table.Writer {
	t := table.NewWriter()
	t.SetTitle("Packages")
	t.AppendHeader(table.Row{"Bucket", "Count", "Packages"})
	for _, b := range descriptor.Buckets() {
		names := m.Bucket(b)
		list := strings.Join(names, ", ")
		if list == "" {
			list = "-"
		}
		t.AppendRow(table.Row{b.String(), len(names), list})
	}
	t.AppendFooter(table.Row{"total", m.Len(), ""})
	return t
}

// Symbol is the plain marker for an action status.
func Symbol(s reconcile.Status) string {
	switch s {
	case reconcile.StatusDone:
		return "✓"
	case reconcile.StatusFailed:
		return "✗"
	case reconcile.StatusPlanned:
		return "○"
	default:
		return "-"
	}
}

// ActionsTable lists the actions of one section.
func ActionsTable(sr reconcile.SectionReport, symbol func(reconcile.Status) string) table.Writer {
	t := table.NewWriter()
	t.SetTitle(sr.Section.String())
	t.AppendHeader(table.Row{"", "Action", "Command", "Status"})
	for _, a := range sr.Actions {
		status := string(a.Status)
		if a.Error != "" {
			status += ": " + a.Error
		}
		t.AppendRow(table.Row{symbol(a.Status), a.Description, a.Command, status})
	}
	return t
}

// Summary is a one-line tally of an apply report.
func Summary(r *reconcile.Report) string {
	parts := []string{}
	for _, s := range []reconcile.Status{reconcile.StatusDone, reconcile.StatusPlanned, reconcile.StatusSkipped, reconcile.StatusFailed} {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// RunTitle heads an apply report.
func RunTitle(r *reconcile.Report) string {
	title := "Apply run " + r.RunID
	if r.DryRun {
		title += " (dry run)"
	}
	return title
}
