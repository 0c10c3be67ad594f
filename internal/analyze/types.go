package analyze

import (
	"reflect"
	"strings"

	"graph-copier/internal/match"
	"graph-copier/node"
	"graph-copier/options"
)

// TypeID uniquely identifies a named type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "graph-copier/store"
	Name    string // e.g., "Person"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Attribute describes one mergeable struct field of a host type.
// Attributes are immutable once their table is built.
type Attribute struct {
	Name      string       // attribute name used in paths: merge tag, json tag or Go field name
	FieldName string       // Go field name
	Type      reflect.Type // declared field type
	Host      reflect.Type // struct type the attribute belongs to
	Index     []int        // field index route, through embedded structs
	Exported  bool
	Key       bool // identity field for collection element equality
	Category  options.CategoryEnum
	Kind      node.KindEnum
	ElemKind  node.KindEnum // element kind for collections and maps

	Capabilities
}

// Capabilities are the resolved access routes of an attribute. Nil means absent.
type Capabilities struct {
	Reader  *Accessor
	Writer  *Mutator
	Adder   *Mutator
	Remover *Mutator
}

// Path renders the attribute for messages, e.g. "store.Person.orders".
func (a *Attribute) Path() string {
	return node.TypeString(a.Host) + "." + a.Name
}

// Accessor reads an attribute, directly from the field or through a zero-argument method on the host pointer.
type Accessor struct {
	Method string // empty for direct field access
	Compat match.TypeCompatibility

	attr   *Attribute
	index  int          // method index in the method set of *Host
	result reflect.Type // method result type
	errOut bool         // method returns (T, error)
}

// Direct reports whether the attribute is read straight from the field.
func (a *Accessor) Direct() bool {
	return a.Method == ""
}

func (a *Accessor) String() string {
	if a.Direct() {
		return "field " + a.attr.FieldName
	}

	return a.Method + "()"
}

// Mutator changes an attribute: assigns the field, or calls a one-argument method on the host pointer.
// Writers take the attribute value, adders and removers a single element.
type Mutator struct {
	Method   string // empty for direct field assignment
	Compat   match.TypeCompatibility
	Variadic bool // the parameter is ...Elem and receives a one-element slice

	attr   *Attribute
	index  int
	param  reflect.Type // parameter type; the element type when variadic
	spread bool         // the method is variadic and is invoked with CallSlice
	errOut bool         // last result is an error
}

// Direct reports whether the attribute is assigned straight to the field.
func (m *Mutator) Direct() bool {
	return m.Method == ""
}

func (m *Mutator) String() string {
	if m.Direct() {
		return "field " + m.attr.FieldName
	}

	if m.Variadic {
		return m.Method + "(..." + node.TypeString(m.param) + ")"
	}

	return m.Method + "(" + node.TypeString(m.param) + ")"
}

// Table lists the attributes of one struct type.
type Table struct {
	Type       reflect.Type // struct type
	Attributes []*Attribute // declaration order; promoted attributes follow the embedding field
	Keys       []*Attribute // attributes tagged merge:",key"

	byName map[string]*Attribute
}

// Lookup finds an attribute by its attribute name.
func (t *Table) Lookup(name string) (*Attribute, bool) {
	attr, ok := t.byName[name]

	return attr, ok
}

// Names returns the attribute names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Attributes))
	for _, attr := range t.Attributes {
		names = append(names, attr.Name)
	}

	return names
}

// String lists the attributes with their capabilities, one per line.
func (t *Table) String() string {
	var b strings.Builder

	b.WriteString(node.TypeString(t.Type))

	for _, attr := range t.Attributes {
		b.WriteString("\n\t")
		b.WriteString(attr.Name)
		b.WriteString(" ")
		b.WriteString(node.TypeString(attr.Type))
		b.WriteString(" ")
		b.WriteString(attr.Kind.String())

		if attr.Category != options.CategoryPlain {
			b.WriteString(" [" + attr.Category.String() + "]")
		}

		for _, c := range []struct {
			label string
			route interface{ String() string }
			ok    bool
		}{
			{"read", attr.Reader, attr.Reader != nil},
			{"write", attr.Writer, attr.Writer != nil},
			{"add", attr.Adder, attr.Adder != nil},
			{"remove", attr.Remover, attr.Remover != nil},
		} {
			if c.ok {
				b.WriteString(" " + c.label + "=" + c.route.String())
			}
		}
	}

	return b.String()
}
