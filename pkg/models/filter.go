package models

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterByCapability returns copies of the descriptors that support the
// given generation method, preserving input order.
func FilterByCapability(descs []Descriptor, method string) []Descriptor {
	out := make([]Descriptor, 0, len(descs))
	for _, d := range descs {
		if d.Supports(method) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// SortByDisplayName orders descriptors ascending by display name using
// locale collation. Comparison is case-sensitive at the tertiary level, and
// descriptors with equal names keep their relative order.
func SortByDisplayName(descs []Descriptor) {
	// Collators keep internal buffers and are not safe for concurrent use.
	c := collate.New(language.Und)
	slices.SortStableFunc(descs, func(a, b Descriptor) int {
		return c.CompareString(a.DisplayName, b.DisplayName)
	})
}

// Names returns the Name of every descriptor in order.
func Names(descs []Descriptor) []string {
	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return names
}

// Find returns the descriptor whose Name or ID equals name.
func Find(descs []Descriptor, name string) (Descriptor, bool) {
	idx := slices.IndexFunc(descs, func(d Descriptor) bool {
		return d.Name == name || d.ID() == name
	})
	if idx < 0 {
		return Descriptor{}, false
	}
	return descs[idx], true
}
