package analyze

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"graph-copier/internal/match"
	"graph-copier/node"
	"graph-copier/options"
	"graph-copier/primitive"
)

var (
	// ErrNotStruct is returned when a table is requested for a type that is not a struct or a pointer to one.
	ErrNotStruct = errors.New("not a struct type")
	// ErrDuplicateAttribute is returned when two fields of the same depth share an attribute name.
	ErrDuplicateAttribute = errors.New("duplicate attribute")
)

var tables sync.Map // reflect.Type -> *Table

// For returns the attribute table of a struct type (pointers are dereferenced).
// Tables are built once per type and shared; they are safe for concurrent use.
func For(t reflect.Type) (*Table, error) {
	if t == nil {
		return nil, ErrNotStruct
	}

	t = node.Base(t)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	if cached, ok := tables.Load(t); ok {
		return cached.(*Table), nil
	}

	table, err := build(t)
	if err != nil {
		return nil, err
	}

	actual, _ := tables.LoadOrStore(t, table)

	return actual.(*Table), nil
}

func build(host reflect.Type) (*Table, error) {
	table := &Table{
		Type:   host,
		byName: make(map[string]*Attribute),
	}

	ptr := reflect.PointerTo(host)

	for _, field := range reflect.VisibleFields(host) {
		if !isAttributeField(host, field) {
			continue
		}

		opts := parseTags(field.Tag)
		if opts.skip {
			continue
		}

		attr := &Attribute{
			Name:      field.Name,
			FieldName: field.Name,
			Type:      field.Type,
			Host:      host,
			Index:     field.Index,
			Exported:  field.IsExported(),
			Key:       opts.key,
			Category:  opts.category(field.Name),
			Kind:      node.Dispatch(field.Type),
			ElemKind:  node.ElemKind(field.Type),
		}

		if opts.name != "" {
			attr.Name = opts.name
		}

		if prev, exists := table.byName[attr.Name]; exists {
			if len(prev.Index) == len(attr.Index) {
				return nil, fmt.Errorf("%w %q of %s: declared by both %s and %s",
					ErrDuplicateAttribute, attr.Name, node.TypeString(host), prev.FieldName, attr.FieldName)
			}

			// the shallower declaration shadows the promoted one
			continue
		}

		resolve(ptr, attr)

		table.Attributes = append(table.Attributes, attr)
		table.byName[attr.Name] = attr

		if attr.Key {
			table.Keys = append(table.Keys, attr)
		}
	}

	return table, nil
}

// isAttributeField filters out embedding fields of non-scalar structs (their fields are promoted instead),
// fields promoted through scalar structs like time.Time, blank fields and kinds that never hold state.
func isAttributeField(host reflect.Type, field reflect.StructField) bool {
	if field.Name == "_" || node.Dispatch(field.Type) == node.KindUnknown {
		return false
	}

	if field.Anonymous {
		if base := node.Base(field.Type); base.Kind() == reflect.Struct && !primitive.IsScalar(base) {
			return false
		}
	}

	t := host
	for _, i := range field.Index[:len(field.Index)-1] {
		t = node.Base(t.Field(i).Type)
		if primitive.IsScalar(t) {
			return false
		}
	}

	return true
}

func resolve(ptr reflect.Type, attr *Attribute) {
	if attr.Exported {
		attr.Reader = &Accessor{Compat: match.TypeIdentical, attr: attr}
	} else {
		attr.Reader = findReader(ptr, attr)
	}

	if attr.Exported && attr.Category&options.CategoryImmutable == 0 {
		attr.Writer = &Mutator{Compat: match.TypeIdentical, attr: attr, param: attr.Type}
	} else {
		attr.Writer = findMutator(ptr, attr, attr.Type, WriterNames(attr.FieldName)...)
	}

	if attr.Kind == node.KindCollection {
		attr.Adder = findMutator(ptr, attr, attr.Type.Elem(), AdderName(attr.FieldName))
		attr.Remover = findMutator(ptr, attr, attr.Type.Elem(), RemoverName(attr.FieldName))
	}
}

func findReader(ptr reflect.Type, attr *Attribute) *Accessor {
	boolean := attr.Type.Kind() == reflect.Bool

	for _, name := range ReaderNames(attr.FieldName, boolean) {
		method, ok := ptr.MethodByName(name)
		if !ok {
			continue
		}

		// the receiver is the first input
		mt := method.Type
		if mt.NumIn() != 1 || mt.IsVariadic() {
			continue
		}

		errOut := false

		switch {
		case mt.NumOut() == 1:
		case mt.NumOut() == 2 && node.IsError(mt.Out(1)):
			errOut = true
		default:
			continue
		}

		compat := match.ScoreReflectCompatibility(mt.Out(0), attr.Type)
		if !compat.Compatible() {
			continue
		}

		return &Accessor{
			Method: name,
			Compat: compat,
			attr:   attr,
			index:  method.Index,
			result: mt.Out(0),
			errOut: errOut,
		}
	}

	return nil
}

func findMutator(ptr reflect.Type, attr *Attribute, required reflect.Type, names ...string) *Mutator {
	for _, name := range names {
		method, ok := ptr.MethodByName(name)
		if !ok {
			continue
		}

		mt := method.Type
		if mt.NumIn() != 2 {
			continue
		}

		errOut := mt.NumOut() > 0 && node.IsError(mt.Out(mt.NumOut()-1))

		param := mt.In(1)
		compat := match.ScoreReflectCompatibility(param, required)

		// a writer may take the whole slice as ...Elem, an adder a single element
		variadic := false
		if mt.IsVariadic() && !compat.Compatible() {
			param = param.Elem()
			compat = match.ScoreReflectCompatibility(param, required)
			variadic = true
		}

		if !compat.Compatible() {
			continue
		}

		return &Mutator{
			Method:   name,
			Compat:   compat,
			Variadic: variadic,
			attr:     attr,
			index:    method.Index,
			param:    param,
			spread:   mt.IsVariadic(),
			errOut:   errOut,
		}
	}

	return nil
}
