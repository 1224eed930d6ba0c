package initialize

import (
	"context"
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/probe"
)

// InitOptions defines the options for InitDescriptor.
type InitOptions struct {
	// ConfigPath is where the descriptor is written.
	ConfigPath string
	// All records every installed package instead of only explicit ones.
	All   bool
	Probe *probe.Probe
	FS    filesystem.FS
}

// InitResult describes the written descriptor.
type InitResult struct {
	Path       string                 `json:"path" yaml:"path"`
	Descriptor *descriptor.Descriptor `json:"descriptor" yaml:"descriptor"`
	// Overwrote is set when a descriptor already existed at Path.
	Overwrote bool `json:"overwrote" yaml:"overwrote"`
}

// InitDescriptor snapshots the running system into a new descriptor at
// opts.ConfigPath. Detection gaps only produce warnings; the only failures
// are a missing path and an unwritable descriptor.
func InitDescriptor(ctx context.Context, opts InitOptions) (*InitResult, error) {
	logger := logging.GetLogger("commands.init")
	logger.Debug().Str("path", opts.ConfigPath).Bool("all", opts.All).Msg("Executing command")

	if opts.ConfigPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "descriptor path cannot be empty")
	}

	result := &InitResult{Path: opts.ConfigPath}
	if _, err := opts.FS.Stat(opts.ConfigPath); err == nil {
		result.Overwrote = true
		logger.Warn().Str("path", opts.ConfigPath).Msg("Overwriting existing descriptor")
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.ErrConfigWrite, "cannot access %s", opts.ConfigPath).
			WithDetail("path", opts.ConfigPath)
	}

	mode := probe.ModeExplicit
	if opts.All {
		mode = probe.ModeAll
	}
	logger.Info().Msg("Detecting system configuration")
	result.Descriptor = opts.Probe.Snapshot(ctx, mode)

	if err := result.Descriptor.Save(opts.FS, opts.ConfigPath); err != nil {
		return nil, err
	}
	logger.Info().Str("path", opts.ConfigPath).Int("packages", result.Descriptor.Packages.Len()).Msg("Descriptor saved")
	return result, nil
}
