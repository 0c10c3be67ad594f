package node

import "reflect"

type identity struct {
	addr uintptr
	typ  reflect.Type
}

// Visited is the set of destination nodes already processed by one top-level merge call.
// Nodes are identified by address and type, so a struct and its first field stay distinct.
// The set holds every visited node, so no address is reused while the set is alive.
// The zero value is ready to use.
type Visited struct {
	done map[identity]reflect.Value
}

// Visit marks the node behind v as processed and reports whether it was new.
// v must be a pointer; nil pointers are never recorded.
func (v *Visited) Visit(node reflect.Value) bool {
	if node.Kind() != reflect.Pointer || node.IsNil() {
		return false
	}

	if v.done == nil {
		v.done = make(map[identity]reflect.Value)
	}

	id := identity{addr: node.Pointer(), typ: node.Type()}
	if _, exists := v.done[id]; exists {
		return false
	}

	v.done[id] = node

	return true
}

// Seen reports whether the node behind v was already visited.
func (v *Visited) Seen(node reflect.Value) bool {
	if node.Kind() != reflect.Pointer || node.IsNil() {
		return false
	}

	_, exists := v.done[identity{addr: node.Pointer(), typ: node.Type()}]

	return exists
}

func (v *Visited) Len() int {
	return len(v.done)
}
