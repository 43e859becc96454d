package parser

import (
	"maps"
	"slices"

	"github.com/yaklabco/gocmark/pkg/textutil"
)

// Reference is a link reference definition.
type Reference struct {
	Destination string
	Title       string
}

// ReferenceMap holds link reference definitions keyed by normalized label.
// The first definition of a label wins.
type ReferenceMap struct {
	refs map[string]Reference
}

// NewReferenceMap returns an empty map.
func NewReferenceMap() *ReferenceMap {
	return &ReferenceMap{refs: make(map[string]Reference)}
}

// Define records a definition for label unless one already exists or the
// label normalizes to the empty string. It reports whether the definition
// was stored.
func (m *ReferenceMap) Define(label, destination, title string) bool {
	key := textutil.NormalizeReference(label)
	if key == "" {
		return false
	}
	if _, exists := m.refs[key]; exists {
		return false
	}
	m.refs[key] = Reference{Destination: destination, Title: title}
	return true
}

// Lookup returns the definition for label, matched case-insensitively and
// ignoring differences in internal whitespace.
func (m *ReferenceMap) Lookup(label string) (Reference, bool) {
	ref, ok := m.refs[textutil.NormalizeReference(label)]
	return ref, ok
}

// Len returns the number of definitions.
func (m *ReferenceMap) Len() int {
	return len(m.refs)
}

// Labels returns the normalized labels in sorted order.
func (m *ReferenceMap) Labels() []string {
	return slices.Sorted(maps.Keys(m.refs))
}
