// Package text provides plain text output without colors or styling
package text

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
	"github.com/arthur-debert/deskset/pkg/ui/display"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Renderer writes plain text suitable for pipes and log files.
type Renderer struct {
	output io.Writer
}

func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	switch v := result.(type) {
	case *show.ShowResult:
		fmt.Fprintf(&b, "Descriptor: %s\n\n", v.Path)
		writeDescriptor(&b, v.Descriptor)
		if len(v.Duplicates) > 0 {
			fmt.Fprintf(&b, "Warning: listed more than once: %s\n", strings.Join(v.Duplicates, ", "))
		}
	case *initialize.InitResult:
		if v.Overwrote {
			fmt.Fprintf(&b, "Replaced existing descriptor %s\n", v.Path)
		}
		writeDescriptor(&b, v.Descriptor)
		fmt.Fprintf(&b, "Descriptor written to %s\n", v.Path)
	case *apply.ApplyResult:
		fmt.Fprintf(&b, "%s: %s\n\n", display.RunTitle(v.Report), v.Path)
		for _, sr := range v.Report.Sections {
			writeTable(&b, display.ActionsTable(sr, display.Symbol))
		}
		fmt.Fprintln(&b, display.Summary(v.Report))
	case *addpackage.AddPackageResult:
		if v.AlreadyPresent {
			fmt.Fprintf(&b, "%s is already listed under %s in %s\n", v.Package, v.Bucket, v.Path)
		} else {
			fmt.Fprintf(&b, "Added %s (%s) to %s in %s\n", v.Package, v.Manager, v.Bucket, v.Path)
		}
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", err.Error())
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", k, details[k])
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeTable(b *strings.Builder, t table.Writer) {
	t.SetStyle(table.StyleDefault)
	b.WriteString(t.Render())
	b.WriteString("\n\n")
}

func writeDescriptor(b *strings.Builder, d *descriptor.Descriptor) {
	writeTable(b, display.FieldTable("System", display.SystemFields(d)))
	writeTable(b, display.FieldTable("Locale", display.LocaleFields(d)))
	writeTable(b, display.FieldTable("Themes", display.ThemeFields(d)))
	writeTable(b, display.ManifestTable(d.Packages))
	if len(d.Widgets) > 0 {
		fmt.Fprintf(b, "Widgets: %s\n\n", strings.Join(d.Widgets, ", "))
	}
}
