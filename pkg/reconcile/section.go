package reconcile

import (
	"fmt"

	"github.com/arthur-debert/deskset/pkg/errors"
)

// Section is one independently appliable part of a descriptor.
type Section int

const (
	SectionSystem Section = iota
	SectionPackages
	SectionThemes
)

// Sections returns every section in apply order.
func Sections() []Section {
	return []Section{SectionSystem, SectionPackages, SectionThemes}
}

func (s Section) String() string {
	switch s {
	case SectionSystem:
		return "system"
	case SectionPackages:
		return "packages"
	case SectionThemes:
		return "themes"
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSection rejects anything but the three section names with
// UNKNOWN_SECTION.
func ParseSection(name string) (Section, error) {
	for _, s := range Sections() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, errors.Newf(errors.ErrUnknownSection, "unknown section: %s", name).
		WithDetail("section", name).
		WithDetail("valid", []string{"system", "packages", "themes"})
}

// SelectSections resolves requested section names into apply order. No
// names selects every section. A given name must be valid, so an empty
// string is UNKNOWN_SECTION rather than "all".
func SelectSections(names ...string) ([]Section, error) {
	if len(names) == 0 {
		return Sections(), nil
	}
	requested := make(map[Section]bool, len(names))
	for _, name := range names {
		s, err := ParseSection(name)
		if err != nil {
			return nil, err
		}
		requested[s] = true
	}
	selected := make([]Section, 0, len(requested))
	for _, s := range Sections() {
		if requested[s] {
			selected = append(selected, s)
		}
	}
	return selected, nil
}
