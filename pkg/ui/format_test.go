package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		name     string
		format   ui.Format
		expected string
	}{
		{"auto format", ui.FormatAuto, "auto"},
		{"terminal format", ui.FormatTerminal, "term"},
		{"text format", ui.FormatText, "text"},
		{"json format", ui.FormatJSON, "json"},
		{"yaml format", ui.FormatYAML, "yaml"},
		{"toml format", ui.FormatTOML, "toml"},
		{"markdown format", ui.FormatMarkdown, "markdown"},
		{"unknown format", ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
	}{
		{"", ui.FormatAuto},
		{"auto", ui.FormatAuto},
		{"term", ui.FormatTerminal},
		{"TERMINAL", ui.FormatTerminal},
		{"text", ui.FormatText},
		{"plain", ui.FormatText},
		{"json", ui.FormatJSON},
		{"yml", ui.FormatYAML},
		{"toml", ui.FormatTOML},
		{"md", ui.FormatMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ui.ParseFormat("xml")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestFormatsRoundTrip(t *testing.T) {
	for _, name := range ui.Formats() {
		f, err := ui.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML, ui.FormatTOML, ui.FormatMarkdown} {
		t.Run(f.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(f, &buf)
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(42), &buf)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestNewRenderer_AutoFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderMessage("hello"))
	assert.Equal(t, "hello\n", buf.String())
}
