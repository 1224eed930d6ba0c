package manager

import (
	"sort"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Registry holds the managers deskset is configured to drive.
type Registry struct {
	native    *Manager
	auxiliary *Manager
}

// NewRegistry builds the registry for the configured native and auxiliary
// executables.
func NewRegistry(native, auxiliary string, r runner.Runner) *Registry {
	return &Registry{
		native:    New(native, r),
		auxiliary: New(auxiliary, r),
	}
}

// Native is the distribution's own package manager.
func (reg *Registry) Native() *Manager { return reg.native }

// Auxiliary is the helper that can also build community packages.
func (reg *Registry) Auxiliary() *Manager { return reg.auxiliary }

// Get returns the manager called name, or UNSUPPORTED_MANAGER.
func (reg *Registry) Get(name string) (*Manager, error) {
	switch name {
	case reg.native.Name:
		return reg.native, nil
	case reg.auxiliary.Name:
		return reg.auxiliary, nil
	}
	return nil, errors.Newf(errors.ErrUnsupportedManager, "unsupported package manager: %s", name).
		WithDetail("manager", name).
		WithDetail("supported", reg.Names())
}

// Names lists the supported manager names, sorted.
func (reg *Registry) Names() []string {
	names := []string{reg.native.Name, reg.auxiliary.Name}
	sort.Strings(names)
	return names
}
