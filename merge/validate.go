package merge

import (
	"errors"
	"fmt"
	"reflect"

	"graph-copier/internal/analyze"
	"graph-copier/internal/mapping"
	"graph-copier/internal/match"
	"graph-copier/node"
)

// ValidatePaths checks dotted attribute paths against the type of dst, a pointer to a struct,
// reporting every path that is malformed or names no attribute.
func ValidatePaths(dst any, paths ...string) error {
	d, _, err := destination(dst)
	if err != nil {
		return err
	}

	if !d.IsValid() {
		return fmt.Errorf("%w: nil", ErrInvalidTarget)
	}

	spec, err := mapping.NewPathSpec(paths, false)
	if err != nil {
		return err
	}

	return validatePaths(d.Type(), spec)
}

func validatePaths(t reflect.Type, spec *mapping.PathSpec) error {
	var errs []error

	for _, p := range spec.Paths() {
		if err := validatePath(t, p); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// validatePath walks p through the attribute tables from t. Walking stops at interface-typed
// attributes, whose types are only known at merge time.
func validatePath(t reflect.Type, p mapping.FieldPath) error {
	host := node.Base(t)
	prefix := ""

	for i, seg := range p.Segments {
		table, err := analyze.For(host)
		if errors.Is(err, analyze.ErrDuplicateAttribute) {
			return attributeError(host, prefix, err)
		}

		prefix = join(prefix, seg.Name)

		if err != nil {
			return &AttributeError{Type: host, Path: prefix, Err: ErrAttributeNotFound}
		}

		attr, ok := table.Lookup(seg.Name)
		if !ok {
			return &AttributeError{
				Type:        host,
				Path:        prefix,
				Err:         ErrAttributeNotFound,
				Suggestions: match.Suggest(seg.Name, table.Names()),
			}
		}

		if seg.IsSlice && attr.Kind != node.KindCollection {
			return &AttributeError{
				Type: host,
				Path: prefix,
				Err:  fmt.Errorf("%w: %s is %s, not a collection", ErrInvalidPath, seg.Name, attr.Kind),
			}
		}

		if i == len(p.Segments)-1 {
			break
		}

		next, walk := nextHost(attr)
		if !walk {
			return nil
		}

		if next == nil {
			return &AttributeError{
				Type: host,
				Path: prefix + "." + p.Segments[i+1].Name,
				Err:  fmt.Errorf("%w: %s is %s", ErrAttributeNotFound, seg.Name, attr.Kind),
			}
		}

		host = next
	}

	return nil
}

// nextHost returns the struct type the attributes of a path continue in: the composite itself or
// the composite elements of a collection. walk is false when the type is only known at merge time.
func nextHost(attr *analyze.Attribute) (next reflect.Type, walk bool) {
	switch attr.Kind {
	case node.KindComposite:
		return node.Base(attr.Type), true
	case node.KindCollection:
		switch attr.ElemKind {
		case node.KindComposite:
			return node.Base(attr.Type.Elem()), true
		case node.KindDynamic:
			return nil, false
		}
	case node.KindDynamic:
		return nil, false
	}

	return nil, true
}
