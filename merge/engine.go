package merge

import (
	"fmt"
	"reflect"

	"graph-copier/internal/analyze"
	"graph-copier/internal/mapping"
	"graph-copier/node"
	"graph-copier/options"
	"graph-copier/primitive"

	"go.uber.org/zap"
)

// Merge copies the selected attributes of src into dst, recursively.
//
// dst must be a pointer to a struct; src is a pointer to, or a value of, the same struct type.
// A nil dst or src makes Merge a no-op. Each destination node is merged at most once per call,
// so cyclic graphs terminate. Errors abort the merge; changes made before the error remain.
func Merge(dst, src any, opts ...options.Option) error {
	o := options.New(opts...)

	d, ok, err := destination(dst)
	if err != nil || !ok {
		return err
	}

	s, ok, err := source(src, d.Type())
	if err != nil || !ok {
		return err
	}

	spec, err := mapping.NewPathSpec(o.Paths, o.Exclusion)
	if err != nil {
		return err
	}

	if err := validatePaths(d.Type(), spec); err != nil {
		return err
	}

	o.Logger.Debug("merge",
		zap.String("type", node.TypeString(d.Type().Elem())),
		zap.Stringer("paths", spec),
		zap.Bool("nullsOnly", o.NullsOnly),
		zap.Bool("mergeCollections", o.MergeCollections),
		zap.Bool("updateCollections", o.UpdateCollections),
		zap.Stringer("allow", o.Allow))

	m := newMerger(o)

	return m.merge(d, s, spec, "")
}

type merger struct {
	opts    *options.Options
	log     *zap.Logger
	visited node.Visited
}

func newMerger(o *options.Options) *merger {
	return &merger{opts: o, log: o.Logger}
}

// merge merges src into dst, pointers to structs of the same type.
func (m *merger) merge(dst, src reflect.Value, spec *mapping.PathSpec, path string) error {
	if !dst.IsValid() || !src.IsValid() || dst.IsNil() || src.IsNil() {
		return nil
	}

	if !m.visited.Visit(dst) {
		m.log.Debug("already merged", zap.String("path", path), zap.String("type", node.TypeString(dst.Type().Elem())))
		return nil
	}

	table, err := analyze.For(dst.Type())
	if err != nil {
		return attributeError(dst.Type(), path, err)
	}

	for _, attr := range table.Attributes {
		if !m.opts.Allow.Admits(attr.Category) || !spec.Selects(attr.Name) {
			continue
		}

		slot := attribute{
			Attribute: attr,
			host:      dst,
			path:      join(path, attr.Name),
			required:  spec.Explicit(attr.Name),
		}

		if err := m.mergeAttribute(slot, src, spec.Child(attr.Name)); err != nil {
			return err
		}
	}

	return nil
}

// attribute is an attribute of a destination node being merged.
type attribute struct {
	*analyze.Attribute

	host     reflect.Value
	path     string
	required bool // named by an inclusion path: missing routes are errors, not skips
}

func (m *merger) mergeAttribute(a attribute, src reflect.Value, child *mapping.PathSpec) error {
	if a.Reader == nil {
		return m.skip(a, ErrMissingAccessor, "no reader")
	}

	v1, err := a.Reader.Get(a.host)
	if err != nil {
		return attributeError(a.host.Type(), a.path, err)
	}

	v2, err := a.Reader.Get(src)
	if err != nil {
		return attributeError(a.host.Type(), a.path, err)
	}

	if m.opts.NullsOnly && initialized(v1) {
		return nil
	}

	route := m.route(a.Kind)
	m.log.Debug("attribute", zap.String("path", a.path), zap.Stringer("route", route))

	switch route {
	case routeCollection:
		return m.reconcileCollection(a, v1, v2, child, true)
	case routeMap:
		return m.reconcileMap(a, v1, v2)
	case routeComposite:
		return m.mergeComposite(a, v1, v2, child)
	case routeDynamic:
		return m.mergeDynamic(a, v1, v2, child)
	default:
		return m.overwrite(a, v1, v2)
	}
}

// overwrite writes v2 when it differs from v1.
func (m *merger) overwrite(a attribute, v1, v2 reflect.Value) error {
	if equal(v1, v2) {
		return nil
	}

	return m.write(a, v2)
}

func (m *merger) write(a attribute, v reflect.Value) error {
	if a.Writer == nil {
		return m.skip(a, ErrMissingMutator, "no writer")
	}

	if err := a.Writer.Call(a.host, v); err != nil {
		return attributeError(a.host.Type(), a.path, err)
	}

	return nil
}

// mergeComposite merges struct-valued attributes. Pointers are merged in place; a nil destination
// takes the source pointer. Struct values not reachable in place are merged on a copy that is
// written back.
func (m *merger) mergeComposite(a attribute, v1, v2 reflect.Value, child *mapping.PathSpec) error {
	if a.Type.Kind() == reflect.Pointer {
		switch {
		case v2.IsNil():
			return nil
		case v1.IsNil():
			return m.write(a, v2)
		}

		return m.merge(v1, v2, child, a.path)
	}

	if v1.CanAddr() && a.Writer != nil && a.Writer.Direct() {
		return m.merge(v1.Addr(), pointerTo(v2), child, a.path)
	}

	merged := pointerTo(detach(v1))
	if err := m.merge(merged, pointerTo(v2), child, a.path); err != nil {
		return err
	}

	if v1.CanInterface() && reflect.DeepEqual(v1.Interface(), merged.Elem().Interface()) {
		return nil
	}

	return m.write(a, merged.Elem())
}

// mergeDynamic routes interface-typed attributes by their dynamic values.
func (m *merger) mergeDynamic(a attribute, v1, v2 reflect.Value, child *mapping.PathSpec) error {
	e1, e2 := unwrap(v1), unwrap(v2)

	if sameComposite(e1, e2) {
		return m.merge(e1, e2, child, a.path)
	}

	if !e2.IsValid() {
		return nil
	}

	return m.overwrite(a, v1, v2)
}

// sameComposite reports whether both values are non-nil pointers to structs of the same type.
func sameComposite(a, b reflect.Value) bool {
	return a.IsValid() && b.IsValid() && a.Type() == b.Type() &&
		node.Dispatch(a.Type()) == node.KindComposite && a.Kind() == reflect.Pointer &&
		!a.IsNil() && !b.IsNil()
}

// skip reports a missing route: an error for required attributes, a debug entry otherwise.
func (m *merger) skip(a attribute, sentinel error, reason string) error {
	if a.required {
		return missing(a.host.Type(), a.path, sentinel, "%s for %s", reason, a.FieldName)
	}

	m.log.Debug("attribute skipped", zap.String("path", a.path), zap.String("reason", reason))

	return nil
}

func (m *merger) route(kind node.KindEnum) routeEnum {
	switch kind {
	case node.KindCollection:
		if m.opts.MergeCollections {
			return routeCollection
		}
	case node.KindMap:
		if m.opts.MergeCollections {
			return routeMap
		}
	case node.KindComposite:
		return routeComposite
	case node.KindDynamic:
		return routeDynamic
	}

	return routeOverwrite
}

// destination checks dst is a pointer to a struct; a nil pointer reports ok == false.
func destination(dst any) (v reflect.Value, ok bool, err error) {
	if dst == nil {
		return reflect.Value{}, false, nil
	}

	v = reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Type().Elem().Kind() != reflect.Struct || primitive.IsScalar(v.Type().Elem()) {
		return reflect.Value{}, false, fmt.Errorf("%w: %T is not a pointer to a struct", ErrInvalidTarget, dst)
	}

	return v, !v.IsNil(), nil
}

// source accepts a pointer to, or a value of, the destination's struct type.
func source(src any, ptr reflect.Type) (v reflect.Value, ok bool, err error) {
	if src == nil {
		return reflect.Value{}, false, nil
	}

	v = reflect.ValueOf(src)

	switch v.Type() {
	case ptr:
		return v, !v.IsNil(), nil
	case ptr.Elem():
		return pointerTo(v), true, nil
	}

	return reflect.Value{}, false, fmt.Errorf("%w: cannot merge %s into %s",
		ErrIncompatibleType, node.TypeString(v.Type()), node.TypeString(ptr))
}

func join(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}
