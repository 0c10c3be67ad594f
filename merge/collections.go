package merge

import (
	"reflect"

	"graph-copier/internal/mapping"
	"graph-copier/node"

	"go.uber.org/zap"
)

// reconcileCollection adds the source elements the destination does not contain and, when nested
// is set, merges the composite elements both contain. With UpdateCollections the destination
// elements missing from the source are removed afterwards.
func (m *merger) reconcileCollection(a attribute, v1, v2 reflect.Value, child *mapping.PathSpec, nested bool) error {
	if !v2.IsValid() || v2.IsNil() {
		return nil
	}

	current := v1

	for i := range v2.Len() {
		elem := v2.Index(i)

		idx := indexOf(current, elem)
		if idx < 0 {
			var err error

			current, err = m.add(a, current, detach(elem))
			if err != nil {
				return err
			}

			continue
		}

		if nested {
			if err := m.mergeElement(a, current.Index(idx), elem, child); err != nil {
				return err
			}
		}
	}

	if !m.opts.UpdateCollections {
		return nil
	}

	var stale []reflect.Value

	for i := range current.Len() {
		if elem := current.Index(i); indexOf(v2, elem) < 0 {
			stale = append(stale, detach(elem))
		}
	}

	_, err := m.remove(a, current, stale...)

	return err
}

// mergeElement merges a source element into the equal destination element.
// Atomic elements are already equal.
func (m *merger) mergeElement(a attribute, dst, src reflect.Value, child *mapping.PathSpec) error {
	switch a.ElemKind {
	case node.KindComposite:
		if dst.Kind() == reflect.Pointer {
			return m.merge(dst, src, child, a.path)
		}

		return m.merge(dst.Addr(), pointerTo(src), child, a.path)
	case node.KindDynamic:
		if e1, e2 := unwrap(dst), unwrap(src); sameComposite(e1, e2) {
			return m.merge(e1, e2, child, a.path)
		}
	}

	return nil
}

// add appends elem through the adder, or by writing back an extended collection.
// It returns the collection as it is after the change.
func (m *merger) add(a attribute, current, elem reflect.Value) (reflect.Value, error) {
	m.log.Debug("adding element", zap.String("path", a.path))

	if a.Adder != nil {
		if err := a.Adder.Call(a.host, elem); err != nil {
			return current, attributeError(a.host.Type(), a.path, err)
		}

		return m.reread(a, current)
	}

	if a.Writer == nil {
		return current, m.skip(a, ErrMissingMutator, "no adder or writer")
	}

	if a.Reader == nil {
		return current, m.skip(a, ErrMissingAccessor, "no reader to extend the collection")
	}

	if !current.IsValid() {
		current = reflect.Zero(a.Type)
	}

	extended := reflect.Append(detach(current), elem)
	if err := a.Writer.Call(a.host, extended); err != nil {
		return current, attributeError(a.host.Type(), a.path, err)
	}

	return m.reread(a, extended)
}

// remove removes every element equal to one of stale through the remover, or by writing back
// a filtered collection.
func (m *merger) remove(a attribute, current reflect.Value, stale ...reflect.Value) (reflect.Value, error) {
	if len(stale) == 0 {
		return current, nil
	}

	m.log.Debug("removing elements", zap.String("path", a.path), zap.Int("count", len(stale)))

	if a.Remover != nil {
		for _, elem := range stale {
			if err := a.Remover.Call(a.host, elem); err != nil {
				return current, attributeError(a.host.Type(), a.path, err)
			}
		}

		return m.reread(a, current)
	}

	if a.Writer == nil {
		return current, m.skip(a, ErrMissingMutator, "no remover or writer")
	}

	if a.Reader == nil {
		return current, m.skip(a, ErrMissingAccessor, "no reader to filter the collection")
	}

	filtered := reflect.MakeSlice(current.Type(), 0, current.Len())

	for i := range current.Len() {
		elem := current.Index(i)
		if !containsAny(stale, elem) {
			filtered = reflect.Append(filtered, elem)
		}
	}

	if err := a.Writer.Call(a.host, filtered); err != nil {
		return current, attributeError(a.host.Type(), a.path, err)
	}

	return m.reread(a, filtered)
}

// reread reads the collection again after a mutator changed it; fallback is used when it has no reader.
func (m *merger) reread(a attribute, fallback reflect.Value) (reflect.Value, error) {
	if a.Reader == nil {
		return fallback, nil
	}

	v, err := a.Reader.Get(a.host)
	if err != nil {
		return fallback, attributeError(a.host.Type(), a.path, err)
	}

	return v, nil
}

func containsAny(list []reflect.Value, elem reflect.Value) bool {
	for _, v := range list {
		if equal(v, elem) {
			return true
		}
	}

	return false
}

// reconcileMap puts every source entry into the destination map and, with UpdateCollections,
// deletes the keys the source lacks. A nil destination map is replaced by a new one.
func (m *merger) reconcileMap(a attribute, v1, v2 reflect.Value) error {
	if !v2.IsValid() || v2.IsNil() {
		return nil
	}

	target := v1
	if !target.IsValid() || target.IsNil() {
		target = reflect.MakeMapWithSize(a.Type, v2.Len())

		if err := m.write(a, target); err != nil || a.Writer == nil {
			return err
		}
	}

	iter := v2.MapRange()
	for iter.Next() {
		current := target.MapIndex(iter.Key())
		if current.IsValid() && equal(current, iter.Value()) {
			continue
		}

		m.log.Debug("putting entry", zap.String("path", a.path), zap.Any("key", keyOf(iter.Key())))
		target.SetMapIndex(iter.Key(), iter.Value())
	}

	if !m.opts.UpdateCollections {
		return nil
	}

	for _, key := range target.MapKeys() {
		if !v2.MapIndex(key).IsValid() {
			m.log.Debug("deleting entry", zap.String("path", a.path), zap.Any("key", keyOf(key)))
			target.SetMapIndex(key, reflect.Value{})
		}
	}

	return nil
}

func keyOf(key reflect.Value) any {
	if key.CanInterface() {
		return key.Interface()
	}

	return key.String()
}
