// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/deskset/pkg/commands/addpackage"
	"github.com/arthur-debert/deskset/pkg/commands/apply"
	"github.com/arthur-debert/deskset/pkg/commands/initialize"
	"github.com/arthur-debert/deskset/pkg/commands/show"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/arthur-debert/deskset/pkg/ui/display"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pterm/pterm"
)

// Renderer writes styled output for interactive terminals.
type Renderer struct {
	output io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *show.ShowResult:
		return r.renderShow(v)
	case *initialize.InitResult:
		return r.renderInit(v)
	case *apply.ApplyResult:
		return r.renderApply(v)
	case *addpackage.AddPackageResult:
		return r.renderAddPackage(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	code := errors.GetErrorCode(err)
	b.WriteString(fmt.Sprintf("%s %s\n", ErrorStyle.Render(pterm.Error.Prefix.Text), err.Error()))
	if code != errors.ErrUnknown {
		b.WriteString(MutedStyle.Render("  code: "+string(code)) + "\n")
	}
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("  %s: %v", k, details[k])) + "\n")
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintf(r.output, "%s %s\n", InfoStyle.Render(pterm.Info.Prefix.Text), msg)
	return err
}

func (r *Renderer) writeTable(t table.Writer) {
	t.SetStyle(table.StyleRounded)
	fmt.Fprintln(r.output, t.Render())
}

func (r *Renderer) renderDescriptor(d *descriptor.Descriptor) {
	r.writeTable(display.FieldTable("System", display.SystemFields(d)))
	r.writeTable(display.FieldTable("Locale", display.LocaleFields(d)))
	r.writeTable(display.FieldTable("Themes", display.ThemeFields(d)))
	r.writeTable(display.ManifestTable(d.Packages))
	if len(d.Widgets) > 0 {
		fmt.Fprintf(r.output, "%s %s\n", TitleStyle.Render("Widgets:"), strings.Join(d.Widgets, ", "))
	}
}

func (r *Renderer) renderShow(v *show.ShowResult) error {
	fmt.Fprintf(r.output, "%s %s\n\n", TitleStyle.Render("Descriptor"), PathStyle.Render(v.Path))
	r.renderDescriptor(v.Descriptor)
	if len(v.Duplicates) > 0 {
		fmt.Fprintf(r.output, "%s listed more than once: %s\n",
			WarningStyle.Render(pterm.Warning.Prefix.Text), strings.Join(v.Duplicates, ", "))
	}
	return nil
}

func (r *Renderer) renderInit(v *initialize.InitResult) error {
	if v.Overwrote {
		fmt.Fprintf(r.output, "%s replaced existing descriptor %s\n",
			WarningStyle.Render(pterm.Warning.Prefix.Text), PathStyle.Render(v.Path))
	}
	r.renderDescriptor(v.Descriptor)
	_, err := fmt.Fprintf(r.output, "%s Descriptor written to %s\n",
		SuccessStyle.Render(pterm.Success.Prefix.Text), PathStyle.Render(v.Path))
	return err
}

func indicator(s reconcile.Status) string {
	switch s {
	case reconcile.StatusDone:
		return SuccessIndicator
	case reconcile.StatusFailed:
		return ErrorIndicator
	case reconcile.StatusPlanned:
		return PendingIndicator
	default:
		return SkippedIndicator
	}
}

func (r *Renderer) renderApply(v *apply.ApplyResult) error {
	report := v.Report
	fmt.Fprintf(r.output, "%s %s\n\n", TitleStyle.Render(display.RunTitle(report)), PathStyle.Render(v.Path))

	for _, sr := range report.Sections {
		fmt.Fprintln(r.output, TitleStyle.Render(sr.Section.String()))
		if len(sr.Actions) == 0 {
			fmt.Fprintln(r.output, MutedStyle.Render("  nothing configured"))
		}
		for _, a := range sr.Actions {
			line := fmt.Sprintf("  %s %s", indicator(a.Status), a.Description)
			if a.Command != "" {
				line += " " + CodeStyle.Render("("+a.Command+")")
			}
			if a.Error != "" {
				line += "\n    " + ErrorStyle.Render(a.Error)
			}
			fmt.Fprintln(r.output, line)
		}
		fmt.Fprintln(r.output)
	}

	summaryStyle := SuccessStyle
	if len(report.Failed()) > 0 {
		summaryStyle = WarningStyle
	}
	_, err := fmt.Fprintln(r.output, summaryStyle.Render(display.Summary(report)))
	return err
}

func (r *Renderer) renderAddPackage(v *addpackage.AddPackageResult) error {
	if v.AlreadyPresent {
		_, err := fmt.Fprintf(r.output, "%s %s is already listed under %s in %s\n",
			InfoStyle.Render(pterm.Info.Prefix.Text), v.Package, v.Bucket, PathStyle.Render(v.Path))
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s Added %s (%s) to %s in %s\n",
		SuccessStyle.Render(pterm.Success.Prefix.Text), v.Package, v.Manager, v.Bucket, PathStyle.Render(v.Path))
	return err
}
