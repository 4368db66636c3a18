// Package pkg is a package that provides utilities for aigcap.
package pkg

import (
	"path/filepath"
	"strings"
)

// SegmentSet matches paths against a set of names. A name matches when it
// equals any path segment or the file's base name, so an excluded directory
// is honored at any nesting depth, not just as a prefix.
type SegmentSet struct {
	names map[string]struct{}
}

// NewSegmentSet builds a set from the provided names. Empty names are ignored.
func NewSegmentSet(names ...string) *SegmentSet {
	set := &SegmentSet{names: make(map[string]struct{}, len(names))}
	set.Add(names...)

	return set
}

// Add inserts more names into the set.
func (s *SegmentSet) Add(names ...string) {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		s.names[name] = struct{}{}
	}
}

// Len returns the number of names in the set.
func (s *SegmentSet) Len() int {
	return len(s.names)
}

// Matches reports whether any segment of path is in the set.
func (s *SegmentSet) Matches(path string) bool {
	if len(s.names) == 0 {
		return false
	}

	path = filepath.ToSlash(path)
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			continue
		}

		if _, ok := s.names[segment]; ok {
			return true
		}
	}

	return false
}

// SplitList parses a comma-separated name list into its entries. Used for
// the --exclude flag, which accepts "vendor,dist,node_modules".
func SplitList(list string) []string {
	parts := strings.Split(list, ",")
	names := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}

	return names
}
