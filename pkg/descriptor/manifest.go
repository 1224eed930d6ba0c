package descriptor

import (
	"fmt"
)

// PackageManifest holds package names in four buckets. Order within a
// bucket is insertion order. Nothing prevents a hand-edited document from
// listing a name twice; see Duplicates.
type PackageManifest struct {
	System      []string `toml:"system" json:"system" yaml:"system"`
	Development []string `toml:"development" json:"development" yaml:"development"`
	Graphics    []string `toml:"graphics" json:"graphics" yaml:"graphics"`
	Other       []string `toml:"other" json:"other" yaml:"other"`
}

// NewPackageManifest returns a manifest with four empty buckets.
func NewPackageManifest() PackageManifest {
	return PackageManifest{
		System:      []string{},
		Development: []string{},
		Graphics:    []string{},
		Other:       []string{},
	}
}

func (m *PackageManifest) slot(b Bucket) *[]string {
	switch b {
	case BucketSystem:
		return &m.System
	case BucketDevelopment:
		return &m.Development
	case BucketGraphics:
		return &m.Graphics
	case BucketOther:
		return &m.Other
	}
	panic(fmt.Sprintf("descriptor: unknown bucket %d", int(b)))
}

// Bucket returns the names stored in b.
func (m *PackageManifest) Bucket(b Bucket) []string {
	return *m.slot(b)
}

// Append adds name to the end of bucket b.
func (m *PackageManifest) Append(b Bucket, name string) {
	s := m.slot(b)
	*s = append(*s, name)
}

// Flatten concatenates all buckets in Buckets() order, duplicates included.
func (m *PackageManifest) Flatten() []string {
	var out []string
	for _, b := range Buckets() {
		out = append(out, m.Bucket(b)...)
	}
	return out
}

// Len returns the total number of entries across buckets.
func (m *PackageManifest) Len() int {
	n := 0
	for _, b := range Buckets() {
		n += len(m.Bucket(b))
	}
	return n
}

// Contains reports the first bucket holding name.
func (m *PackageManifest) Contains(name string) (Bucket, bool) {
	for _, b := range Buckets() {
		for _, existing := range m.Bucket(b) {
			if existing == name {
				return b, true
			}
		}
	}
	return BucketOther, false
}

// Duplicates returns the names that appear more than once, within or across
// buckets, in first-seen order.
func (m *PackageManifest) Duplicates() []string {
	seen := make(map[string]int)
	var dups []string
	for _, name := range m.Flatten() {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

func (m *PackageManifest) normalize() {
	for _, b := range Buckets() {
		if s := m.slot(b); *s == nil {
			*s = []string{}
		}
	}
}
