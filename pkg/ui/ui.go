// Package ui renders command results and errors in the format the operator
// asked for: rich terminal output, plain text, JSON, YAML, TOML or
// markdown.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/ui/json"
	"github.com/arthur-debert/deskset/pkg/ui/markdown"
	"github.com/arthur-debert/deskset/pkg/ui/structured"
	"github.com/arthur-debert/deskset/pkg/ui/terminal"
	"github.com/arthur-debert/deskset/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return structured.NewYAML(output), nil
	case FormatTOML:
		return structured.NewTOML(output), nil
	case FormatMarkdown:
		styled := false
		if file, ok := output.(*os.File); ok {
			styled = IsColorTerminal(file)
		}
		return markdown.New(output, styled), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
