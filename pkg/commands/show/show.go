package show

import (
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/filesystem"
)

// ShowResult is a loaded descriptor ready for display.
type ShowResult struct {
	Path       string                 `json:"path" yaml:"path"`
	Descriptor *descriptor.Descriptor `json:"descriptor" yaml:"descriptor"`
	// Duplicates lists packages named more than once.
	Duplicates []string `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`
}

// ShowDescriptor loads the descriptor at path for display.
func ShowDescriptor(fsys filesystem.FS, path string) (*ShowResult, error) {
	d, err := descriptor.Load(fsys, path)
	if err != nil {
		return nil, err
	}
	return &ShowResult{Path: path, Descriptor: d, Duplicates: d.Packages.Duplicates()}, nil
}
