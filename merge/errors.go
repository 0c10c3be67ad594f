package merge

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"graph-copier/internal/analyze"
	"graph-copier/internal/mapping"
	"graph-copier/node"
)

var (
	// ErrMissingAccessor is returned when a required attribute has no reader.
	ErrMissingAccessor = errors.New("missing accessor")
	// ErrMissingMutator is returned when a required attribute has no writer, adder or remover for its route.
	ErrMissingMutator = errors.New("missing mutator")
	// ErrAttributeNotFound is returned for paths and keys naming no attribute.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrIncompatibleType is returned when a value does not fit the attribute it is merged into.
	ErrIncompatibleType = errors.New("incompatible type")
	// ErrInvalidTarget is returned when the destination is not a pointer to a struct.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidPath is returned for malformed attribute paths.
	ErrInvalidPath = mapping.ErrInvalidPath
)

// AttributeError reports the attribute a merge failed on.
type AttributeError struct {
	Type        reflect.Type // host type of the attribute
	Path        string       // dotted attribute path from the merge root
	Err         error
	Suggestions []string // close attribute names, for ErrAttributeNotFound
}

func (e *AttributeError) Error() string {
	var b strings.Builder

	switch {
	case e.Path != "":
		b.WriteString("attribute ")
		b.WriteString(e.Path)

		if e.Type != nil {
			b.WriteString(" of ")
			b.WriteString(node.TypeString(e.Type))
		}
	case e.Type != nil:
		b.WriteString("type ")
		b.WriteString(node.TypeString(e.Type))
	default:
		b.WriteString("merge root")
	}

	b.WriteString(": ")
	b.WriteString(e.Err.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean " + strings.Join(e.Suggestions, ", ") + "?)")
	}

	return b.String()
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}

func attributeError(host reflect.Type, path string, err error) error {
	if errors.Is(err, analyze.ErrIncompatibleValue) && !errors.Is(err, ErrIncompatibleType) {
		err = fmt.Errorf("%w: %w", ErrIncompatibleType, err)
	}

	return &AttributeError{Type: node.Base(host), Path: path, Err: err}
}

// tableOf returns the attribute table of the struct behind a destination pointer.
func tableOf(host reflect.Type) (*analyze.Table, error) {
	table, err := analyze.For(host)
	if err != nil {
		return nil, attributeError(host, "", err)
	}

	return table, nil
}

func missing(host reflect.Type, path string, sentinel error, format string, args ...any) error {
	return attributeError(host, path, fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...))
}

func errIncompatible(err error) error {
	return fmt.Errorf("%w: %w", ErrIncompatibleType, err)
}
