package mapping

import (
	"sort"
	"strings"
)

// PrefixSet holds every non-empty prefix of a set of paths, e.g. "orders", "orders.items"
// and "orders.items.name" for "orders.items.name".
type PrefixSet map[string]struct{}

// Contains reports whether prefix is in the set.
func (s PrefixSet) Contains(prefix string) bool {
	_, ok := s[prefix]

	return ok
}

// Sorted returns the prefixes in lexical order.
func (s PrefixSet) Sorted() []string {
	res := make([]string, 0, len(s))
	for p := range s {
		res = append(res, p)
	}

	sort.Strings(res)

	return res
}

// PathSpec restricts a merge to a set of paths, or, in exclusion mode, keeps everything but them.
// A nil or empty PathSpec selects every attribute. PathSpecs are immutable.
type PathSpec struct {
	paths     []FieldPath
	prefixes  PrefixSet
	exclusion bool
}

// NewPathSpec parses paths into a spec. Duplicate paths collapse.
func NewPathSpec(paths []string, exclusion bool) (*PathSpec, error) {
	parsed, err := ParsePaths(paths)
	if err != nil {
		return nil, err
	}

	return newSpec(parsed, exclusion), nil
}

func newSpec(paths []FieldPath, exclusion bool) *PathSpec {
	spec := &PathSpec{
		prefixes:  make(PrefixSet),
		exclusion: exclusion,
	}

	seen := make(map[string]bool, len(paths))

	for _, p := range paths {
		if p.IsEmpty() || seen[p.String()] {
			continue
		}

		seen[p.String()] = true
		spec.paths = append(spec.paths, p)

		for i := range p.Segments {
			spec.prefixes[FieldPath{Segments: p.Segments[:i+1]}.Key()] = struct{}{}
		}
	}

	return spec
}

// Empty reports whether the spec selects every attribute.
func (s *PathSpec) Empty() bool {
	return s == nil || len(s.paths) == 0
}

// Exclusion reports whether the paths name what to leave out.
func (s *PathSpec) Exclusion() bool {
	return s != nil && s.exclusion
}

// Paths returns the parsed paths in the order they were given.
func (s *PathSpec) Paths() []FieldPath {
	if s == nil {
		return nil
	}

	return s.paths
}

// Prefixes returns the prefix set of the spec.
func (s *PathSpec) Prefixes() PrefixSet {
	if s == nil {
		return PrefixSet{}
	}

	return s.prefixes
}

// Selects reports whether the attribute name is selected at this level.
// In inclusion mode the name must start a path; in exclusion mode it is dropped only
// when it is a whole path, so an attribute that merely leads to excluded ones stays selected.
func (s *PathSpec) Selects(name string) bool {
	if s.Empty() {
		return true
	}

	if s.exclusion {
		return !s.isWholePath(name)
	}

	return s.prefixes.Contains(name)
}

// Explicit reports whether the name was given by an inclusion path at this level.
func (s *PathSpec) Explicit(name string) bool {
	return !s.Empty() && !s.exclusion && s.prefixes.Contains(name)
}

// CollectionMarked reports whether any path marks name as a collection ("name[]").
func (s *PathSpec) CollectionMarked(name string) bool {
	for _, p := range s.Paths() {
		if p.Root() == name && p.Segments[0].IsSlice {
			return true
		}
	}

	return false
}

// Child returns the spec for the attributes of name's value: the paths starting with name,
// stripped of it. An inclusion path ending at name lifts the restriction entirely.
func (s *PathSpec) Child(name string) *PathSpec {
	if s.Empty() {
		return nil
	}

	var rest []FieldPath

	for _, p := range s.paths {
		if p.Root() != name {
			continue
		}

		if len(p.Segments) == 1 {
			if !s.exclusion {
				return nil
			}

			continue
		}

		rest = append(rest, p.Rest())
	}

	if len(rest) == 0 {
		return nil
	}

	return newSpec(rest, s.exclusion)
}

// String renders the spec, e.g. "include{address.line, name}".
func (s *PathSpec) String() string {
	mode := "include"
	if s.Exclusion() {
		mode = "exclude"
	}

	paths := make([]string, 0, len(s.Paths()))
	for _, p := range s.Paths() {
		paths = append(paths, p.String())
	}

	sort.Strings(paths)

	return mode + "{" + strings.Join(paths, ", ") + "}"
}

func (s *PathSpec) isWholePath(name string) bool {
	for _, p := range s.paths {
		if len(p.Segments) == 1 && p.Root() == name {
			return true
		}
	}

	return false
}
