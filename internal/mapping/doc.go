// Package mapping parses attribute paths, scopes them level by level while a merge
// descends an object graph, and derives paths from request documents.
//
// # Path Syntax
//
// Paths name attributes, not Go fields:
//   - Simple attributes: "name"
//   - Nested attributes: "address.line"
//   - Attributes of collection elements: "orders.amount", or "orders[].amount"
//     to state that orders is a collection
//
// Segments are made of letters, digits, '_' and '-' and must not be empty.
//
// # Path Specs
//
// A PathSpec is the set of paths a merge is restricted to, in inclusion or
// exclusion mode. Its PrefixSet holds every prefix of every path. Descending into
// an attribute strips the attribute from the front of the paths that start with it:
//
//	{"address.line", "orders.items.name"}
//	  .Child("orders")  -> {"items.name"}
//	  .Child("items")   -> {"name"}
//
// An empty spec selects everything, so an inclusion path that ends at a composite
// attribute merges that attribute without restriction.
//
// # Request Documents
//
// ParameterNames turns a nested request (for example a decoded JSON or YAML body)
// into the paths of the values it carries:
//
//	name: Ross
//	address:
//	  line: 1st Ave
//	orders:
//	  - amount: 12.01
//
// yields "address.line", "name" and "orders.amount".
package mapping
