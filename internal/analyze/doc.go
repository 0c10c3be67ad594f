// Package analyze resolves the attributes of struct types and the capabilities
// (reader, writer, adder, remover) each attribute exposes.
//
// Two front ends share the same naming and compatibility rules:
//   - For builds an AttributeTable from a reflect.Type at runtime, memoized per type;
//     the merge engine consumes these tables only.
//   - Loader inspects packages with golang.org/x/tools/go/packages and go/types
//     without running them, reporting the same tables plus diagnostics.
//
// Key types:
//   - Attribute: name, declared type, category, kind and capabilities of one field
//   - Accessor / Mutator: resolved reader and writer/adder/remover routes
//   - Table: the attributes of one struct type, in declaration order
package analyze
