// Package merge copies a selected subset of attributes from one object graph into another.
//
// Merge walks a destination and a source graph of the same struct type in lock-step. At every
// node it asks the attribute table of the type (see internal/analyze) for the attributes the
// visibility policy admits and the path spec selects, reads both values through their readers
// and routes them by attribute kind:
//
//   - atomic values are written when they differ;
//   - collections and maps are overwritten, or reconciled when collection merging is enabled;
//   - composites are merged recursively with the paths below the attribute.
//
// # Attributes and capabilities
//
// Exported fields are read and written directly. Unexported fields are reached through methods
// on the pointer receiver: X, GetX or IsX to read, X, SetX or WithX to write, and AddS or RemoveS
// (S the singular of the field name) to change collections element by element:
//
//	type Person struct {
//		Name   string
//		orders []*Order
//	}
//
//	func (p *Person) Orders() []*Order      { return p.orders }
//	func (p *Person) AddOrder(o ...*Order)  { p.orders = append(p.orders, o...) }
//	func (p *Person) RemoveOrder(o *Order)  { ... }
//
// Struct tags refine attributes: merge:"name" renames, merge:"-" skips, and the options
// key, static, readonly and transient mark identity, shared, write-protected and volatile
// attributes. json:"-" also marks an attribute transient.
//
// # Paths
//
// Options restrict a merge to dotted paths ("address.line", "orders.items.name"), or with
// exclusion merge everything but them. Paths are checked against the destination type first;
// unknown attributes fail with ErrAttributeNotFound and suggestions.
//
// # Collections
//
// With collection merging, source elements missing from the destination are added and elements
// both contain are merged. Elements are the same when an Equal method says so, else when their
// key attributes match, else when they are deeply equal. Updating collections also removes
// the destination elements the source lacks.
//
// # Errors
//
// Merges stop at the first error and do not roll back. Attributes named by an inclusion path
// are required: a missing reader or mutator is an error instead of a skip.
package merge
