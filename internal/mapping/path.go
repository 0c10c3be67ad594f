package mapping

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"graph-copier/internal/common"
)

// ErrInvalidPath is returned for malformed attribute paths.
var ErrInvalidPath = errors.New("invalid path")

// PathSegment represents a parsed segment of an attribute path.
type PathSegment struct {
	// Name is the attribute name.
	Name string

	// IsSlice indicates the segment was written with the collection marker (e.g., "orders[]").
	IsSlice bool
}

// FieldPath represents a parsed attribute path like "orders[].amount".
type FieldPath struct {
	Segments []PathSegment
}

// ParsePath parses an attribute path string into a FieldPath.
// Supports: "name", "address.line", "orders[]", "orders[].amount".
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return FieldPath{}, fmt.Errorf("%w %q: empty segment", ErrInvalidPath, path)
		}

		isSlice := false
		name := part

		if strings.HasSuffix(part, "[]") {
			isSlice = true
			name = strings.TrimSuffix(part, "[]")

			if name == "" {
				return FieldPath{}, fmt.Errorf("%w %q: collection marker without attribute name", ErrInvalidPath, path)
			}
		}

		if !isValidName(name) {
			return FieldPath{}, fmt.Errorf("%w %q: invalid attribute name %q", ErrInvalidPath, path, name)
		}

		segments = append(segments, PathSegment{Name: name, IsSlice: isSlice})
	}

	return FieldPath{Segments: segments}, nil
}

// ParsePaths parses multiple attribute paths, stopping at the first malformed one.
func ParsePaths(paths []string) ([]FieldPath, error) {
	result := make([]FieldPath, 0, len(paths))

	for _, p := range paths {
		fp, err := ParsePath(p)
		if err != nil {
			return nil, err
		}

		result = append(result, fp)
	}

	return result, nil
}

// String returns the path with its collection markers.
func (p FieldPath) String() string {
	var b strings.Builder

	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString(".")
		}

		b.WriteString(seg.Name)

		if seg.IsSlice {
			b.WriteString("[]")
		}
	}

	return b.String()
}

// Key returns the path without collection markers; paths with equal keys select the same attributes.
func (p FieldPath) Key() string {
	names := make([]string, len(p.Segments))
	for i, seg := range p.Segments {
		names[i] = seg.Name
	}

	return strings.Join(names, ".")
}

// IsSimple returns true if this is a single attribute path (no nesting, no collection marker).
func (p FieldPath) IsSimple() bool {
	return common.IsSingle(p.Segments) && !p.Segments[0].IsSlice
}

// Root returns the first segment's attribute name.
func (p FieldPath) Root() string {
	first, _ := common.First(p.Segments)

	return first.Name
}

// Rest returns the path without its first segment.
func (p FieldPath) Rest() FieldPath {
	if len(p.Segments) < 2 {
		return FieldPath{}
	}

	return FieldPath{Segments: p.Segments[1:]}
}

// IsEmpty returns true if the path has no segments.
func (p FieldPath) IsEmpty() bool {
	return common.IsEmpty(p.Segments)
}

// Equals returns true if two paths are equal, collection markers included.
func (p FieldPath) Equals(other FieldPath) bool {
	if len(p.Segments) != len(other.Segments) {
		return false
	}

	for i, seg := range p.Segments {
		if seg != other.Segments[i] {
			return false
		}
	}

	return true
}

// isValidName checks a segment: letters, digits, '_' and '-', not starting with a digit or '-'.
func isValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}

	return true
}
