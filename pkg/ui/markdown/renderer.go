// Package markdown renders results as markdown documents, optionally
// styled for the terminal with glamour.
package markdown

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
	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Renderer writes markdown. When styled is set the document goes through
// glamour before being written.
type Renderer struct {
	output io.Writer
	styled bool
}

func New(w io.Writer, styled bool) *Renderer {
	return &Renderer{output: w, styled: styled}
}

func (r *Renderer) write(doc string) error {
	if r.styled {
		tr, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if rendered, rerr := tr.Render(doc); rerr == nil {
				doc = rendered
			}
		}
	}
	_, err := io.WriteString(r.output, doc)
	return err
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.write(Document(result))
}

func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "## Error\n\n%s\n", err.Error())
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		fmt.Fprintf(&b, "\n- **code**: `%s`\n", code)
	}
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "- **%s**: %v\n", k, details[k])
	}
	return r.write(b.String())
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.write(msg + "\n")
}

// Document builds the unstyled markdown for a result.
func Document(result interface{}) string {
	var b strings.Builder
	switch v := result.(type) {
	case *show.ShowResult:
		fmt.Fprintf(&b, "# Descriptor `%s`\n\n", v.Path)
		writeDescriptor(&b, v.Descriptor)
		if len(v.Duplicates) > 0 {
			fmt.Fprintf(&b, "> Listed more than once: %s\n", strings.Join(v.Duplicates, ", "))
		}
	case *initialize.InitResult:
		fmt.Fprintf(&b, "# Descriptor written to `%s`\n\n", v.Path)
		if v.Overwrote {
			b.WriteString("> An existing descriptor was replaced.\n\n")
		}
		writeDescriptor(&b, v.Descriptor)
	case *apply.ApplyResult:
		fmt.Fprintf(&b, "# %s\n\n", display.RunTitle(v.Report))
		fmt.Fprintf(&b, "Descriptor: `%s`\n\n", v.Path)
		for _, sr := range v.Report.Sections {
			fmt.Fprintf(&b, "## %s\n\n", sr.Section)
			writeTable(&b, display.ActionsTable(sr, display.Symbol))
		}
		fmt.Fprintf(&b, "**Summary:** %s\n", display.Summary(v.Report))
	case *addpackage.AddPackageResult:
		if v.AlreadyPresent {
			fmt.Fprintf(&b, "`%s` is already listed under **%s** in `%s`.\n", v.Package, v.Bucket, v.Path)
		} else {
			fmt.Fprintf(&b, "Added `%s` (%s) to **%s** in `%s`.\n", v.Package, v.Manager, v.Bucket, v.Path)
		}
	default:
		fmt.Fprintf(&b, "```\n%+v\n```\n", result)
	}
	return b.String()
}

// writeTable renders without the table title; sections carry headings.
func writeTable(b *strings.Builder, t table.Writer) {
	t.SetTitle("")
	b.WriteString(t.RenderMarkdown())
	b.WriteString("\n\n")
}

func writeDescriptor(b *strings.Builder, d *descriptor.Descriptor) {
	sections := []struct {
		title  string
		fields []display.Field
	}{
		{"System", display.SystemFields(d)},
		{"Locale", display.LocaleFields(d)},
		{"Themes", display.ThemeFields(d)},
	}
	for _, s := range sections {
		fmt.Fprintf(b, "## %s\n\n", s.title)
		writeTable(b, display.FieldTable(s.title, s.fields))
	}
	b.WriteString("## Packages\n\n")
	writeTable(b, display.ManifestTable(d.Packages))
	if len(d.Widgets) > 0 {
		fmt.Fprintf(b, "## Widgets\n\n- %s\n\n", strings.Join(d.Widgets, "\n- "))
	}
}
