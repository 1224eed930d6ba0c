// Package classify sorts package names into manifest buckets and decides
// which package manager should install each one.
package classify

import (
	"strings"

	"github.com/arthur-debert/deskset/pkg/descriptor"
)

// rule assigns bucket when any of the substrings occurs in a name. Rules are
// checked in order and the first hit wins.
type rule struct {
	substrings []string
	bucket     descriptor.Bucket
}

var rules = []rule{
	{[]string{"dev", "build"}, descriptor.BucketDevelopment},
	{[]string{"gtk", "qt"}, descriptor.BucketSystem},
	{[]string{"gimp", "inkscape", "blender"}, descriptor.BucketGraphics},
}

// Categorize guesses a bucket from the package name alone. Matching is
// case-sensitive.
func Categorize(name string) descriptor.Bucket {
	for _, r := range rules {
		for _, s := range r.substrings {
			if strings.Contains(name, s) {
				return r.bucket
			}
		}
	}
	return descriptor.BucketOther
}

// CategorizeAll builds a manifest from names, preserving their order within
// each bucket.
func CategorizeAll(names []string) descriptor.PackageManifest {
	m := descriptor.NewPackageManifest()
	for _, name := range names {
		m.Append(Categorize(name), name)
	}
	return m
}

// ResolveCategory maps an operator-supplied category. Missing or unknown
// labels land in the other bucket.
func ResolveCategory(label string) descriptor.Bucket {
	return descriptor.NormalizeBucket(label)
}
