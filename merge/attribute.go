package merge

import (
	"reflect"

	"graph-copier/internal/match"
	"graph-copier/options"
	"graph-copier/primitive"
)

// GetValue reads the named attribute of obj, a pointer to a struct.
func GetValue(obj any, name string) (any, error) {
	a, _, err := lookup(obj, name)
	if err != nil {
		return nil, err
	}

	if a.Reader == nil {
		return nil, missing(a.host.Type(), name, ErrMissingAccessor, "no reader for %s", a.FieldName)
	}

	v, err := a.Reader.Get(a.host)
	if err != nil {
		return nil, attributeError(a.host.Type(), name, err)
	}

	return v.Interface(), nil
}

// SetValue writes value, converted to the attribute type, to the named attribute of obj.
func SetValue(obj any, name string, value any, opts ...options.Option) error {
	a, m, err := lookup(obj, name, opts...)
	if err != nil {
		return err
	}

	v, err := primitive.Convert(reflect.ValueOf(value), a.Type, m.opts.Coercion)
	if err != nil {
		return attributeError(a.host.Type(), name, errIncompatible(err))
	}

	return m.write(a, v)
}

// AddValue appends elem to the named collection attribute of obj through its adder, or by writing
// back the extended collection.
func AddValue(obj any, name string, elem any, opts ...options.Option) error {
	a, m, err := lookupCollection(obj, name, opts...)
	if err != nil {
		return err
	}

	e, err := primitive.Convert(reflect.ValueOf(elem), a.Type.Elem(), m.opts.Coercion)
	if err != nil {
		return attributeError(a.host.Type(), name, errIncompatible(err))
	}

	current, err := m.current(a)
	if err != nil {
		return err
	}

	_, err = m.add(a, current, e)

	return err
}

// RemoveValue removes the elements equal to elem from the named collection attribute of obj
// through its remover, or by writing back the filtered collection.
func RemoveValue(obj any, name string, elem any, opts ...options.Option) error {
	a, m, err := lookupCollection(obj, name, opts...)
	if err != nil {
		return err
	}

	e, err := primitive.Convert(reflect.ValueOf(elem), a.Type.Elem(), m.opts.Coercion)
	if err != nil {
		return attributeError(a.host.Type(), name, errIncompatible(err))
	}

	current, err := m.current(a)
	if err != nil {
		return err
	}

	_, err = m.remove(a, current, e)

	return err
}

// lookup resolves a single named attribute; it is always required.
func lookup(obj any, name string, opts ...options.Option) (attribute, *merger, error) {
	o := options.New(opts...)

	d, ok, err := destination(obj)
	if err != nil {
		return attribute{}, nil, err
	}

	if !ok {
		return attribute{}, nil, ErrInvalidTarget
	}

	table, err := tableOf(d.Type())
	if err != nil {
		return attribute{}, nil, err
	}

	attr, found := table.Lookup(name)
	if !found {
		return attribute{}, nil, &AttributeError{
			Type:        table.Type,
			Path:        name,
			Err:         ErrAttributeNotFound,
			Suggestions: match.Suggest(name, table.Names()),
		}
	}

	return attribute{Attribute: attr, host: d, path: name, required: true}, newMerger(o), nil
}

func lookupCollection(obj any, name string, opts ...options.Option) (attribute, *merger, error) {
	a, m, err := lookup(obj, name, opts...)
	if err != nil {
		return a, m, err
	}

	if a.Type.Kind() != reflect.Slice {
		return a, m, missing(a.host.Type(), name, ErrIncompatibleType, "%s is %s, not a collection", name, a.Kind)
	}

	return a, m, nil
}

// current reads a collection before a change; collections changed through an adder or remover
// need no reader.
func (m *merger) current(a attribute) (reflect.Value, error) {
	if a.Reader == nil {
		return reflect.Zero(a.Type), nil
	}

	v, err := a.Reader.Get(a.host)
	if err != nil {
		return reflect.Value{}, attributeError(a.host.Type(), a.path, err)
	}

	return v, nil
}
