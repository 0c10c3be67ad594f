package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"sort"

	"graph-copier/internal/diagnostic"
	"graph-copier/internal/match"
	"graph-copier/node"
	"graph-copier/options"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Diagnostic codes reported by the loader.
const (
	CodeNoReader   = "no-reader"
	CodeNoWriter   = "no-writer"
	CodeNoMutator  = "no-mutator"
	CodeDuplicate  = "duplicate-attribute"
	CodeRestricted = "restricted" // refused by the default visibility policy
)

// StaticAttribute is the go/types rendition of an Attribute. Routes are described
// as "field", a method signature, or empty when absent.
type StaticAttribute struct {
	Name      string
	FieldName string
	Type      string
	Exported  bool
	Key       bool
	Category  options.CategoryEnum
	Kind      node.KindEnum

	Reader  string
	Writer  string
	Adder   string
	Remover string

	goType types.Type
}

// StaticTable lists the attributes of one named struct type of a loaded package.
type StaticTable struct {
	ID         TypeID
	Attributes []StaticAttribute
}

// Report is the result of inspecting packages.
type Report struct {
	Tables      []*StaticTable // sorted by type ID
	Diagnostics diagnostic.Diagnostics
}

// Loader inspects the exported struct types of Go packages without running them.
type Loader struct {
	// Dir is the directory patterns are resolved in; empty means the current directory.
	Dir    string
	logger *zap.Logger
}

// NewLoader creates a Loader logging through logger (nil for none).
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{logger: logger}
}

// Load loads the packages matching patterns (e.g., "./store", "graph-copier/store")
// and builds a table for every exported struct type.
func (l *Loader) Load(patterns ...string) (*Report, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  l.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	report := &Report{}

	for _, pkg := range pkgs {
		l.logger.Debug("inspecting package", zap.String("package", pkg.PkgPath))

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			typeName, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !typeName.Exported() || typeName.IsAlias() {
				continue
			}

			named, ok := typeName.Type().(*types.Named)
			if !ok {
				continue
			}

			if _, ok := named.Underlying().(*types.Struct); !ok || isScalarNamed(named) {
				continue
			}

			report.Tables = append(report.Tables, inspect(named, &report.Diagnostics))
		}
	}

	sort.Slice(report.Tables, func(i, j int) bool {
		return report.Tables[i].ID.String() < report.Tables[j].ID.String()
	})

	return report, nil
}

// Lookup finds a table by package path and type name.
func (r *Report) Lookup(pkgPath, name string) (*StaticTable, bool) {
	for _, table := range r.Tables {
		if table.ID.PkgPath == pkgPath && table.ID.Name == name {
			return table, true
		}
	}

	return nil, false
}

// Attribute finds an attribute of the table by attribute name.
func (t *StaticTable) Attribute(name string) (*StaticAttribute, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			return &t.Attributes[i], true
		}
	}

	return nil, false
}

type staticField struct {
	field *types.Var
	tag   reflect.StructTag
	depth int
}

func inspect(named *types.Named, diags *diagnostic.Diagnostics) *StaticTable {
	obj := named.Obj()
	table := &StaticTable{ID: TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}}
	mset := types.NewMethodSet(types.NewPointer(named))
	seen := make(map[string]int)

	for _, f := range visibleFields(named.Underlying().(*types.Struct), 0) {
		opts := parseTags(f.tag)
		if opts.skip {
			continue
		}

		attr := StaticAttribute{
			Name:      f.field.Name(),
			FieldName: f.field.Name(),
			Type:      types.TypeString(f.field.Type(), types.RelativeTo(obj.Pkg())),
			Exported:  f.field.Exported(),
			Key:       opts.key,
			Category:  opts.category(f.field.Name()),
			Kind:      staticKind(f.field.Type()),
			goType:    f.field.Type(),
		}

		if opts.name != "" {
			attr.Name = opts.name
		}

		if depth, exists := seen[attr.Name]; exists {
			if depth == f.depth {
				diags.AddError(CodeDuplicate,
					fmt.Sprintf("attribute %q is declared twice", attr.Name), table.ID.String(), attr.Name)
			}

			continue
		}

		seen[attr.Name] = f.depth

		resolveStatic(mset, &attr)
		diagnose(table.ID, &attr, diags)

		table.Attributes = append(table.Attributes, attr)
	}

	return table
}

// visibleFields lists the fields of st with embedded non-scalar structs expanded after their siblings.
func visibleFields(st *types.Struct, depth int) []staticField {
	var (
		res      []staticField
		embedded []*types.Struct
	)

	for i := range st.NumFields() {
		field := st.Field(i)
		if field.Name() == "_" || staticKind(field.Type()) == node.KindUnknown {
			continue
		}

		if field.Embedded() {
			base := field.Type()
			if ptr, ok := base.(*types.Pointer); ok {
				base = ptr.Elem()
			}

			if inner, ok := base.Underlying().(*types.Struct); ok && !isScalarType(base) {
				embedded = append(embedded, inner)
				continue
			}
		}

		res = append(res, staticField{field: field, tag: reflect.StructTag(st.Tag(i)), depth: depth})
	}

	for _, inner := range embedded {
		res = append(res, visibleFields(inner, depth+1)...)
	}

	return res
}

func resolveStatic(mset *types.MethodSet, attr *StaticAttribute) {
	if attr.Exported {
		attr.Reader = "field"
	} else {
		basic, ok := attr.goType.Underlying().(*types.Basic)
		attr.Reader = staticReader(mset, attr.goType, ReaderNames(attr.FieldName, ok && basic.Kind() == types.Bool))
	}

	if attr.Exported && attr.Category&options.CategoryImmutable == 0 {
		attr.Writer = "field"
	} else {
		attr.Writer = staticMutator(mset, attr.goType, WriterNames(attr.FieldName))
	}

	if attr.Kind == node.KindCollection {
		elem := attr.goType.Underlying().(*types.Slice).Elem()
		attr.Adder = staticMutator(mset, elem, []string{AdderName(attr.FieldName)})
		attr.Remover = staticMutator(mset, elem, []string{RemoverName(attr.FieldName)})
	}
}

func staticReader(mset *types.MethodSet, required types.Type, names []string) string {
	for _, name := range names {
		sig := lookupSignature(mset, name)
		if sig == nil || sig.Params().Len() != 0 {
			continue
		}

		results := sig.Results()
		switch {
		case results.Len() == 1:
		case results.Len() == 2 && isErrorType(results.At(1).Type()):
		default:
			continue
		}

		if match.ScoreTypeCompatibility(results.At(0).Type(), required).Compatible() {
			return name + "()"
		}
	}

	return ""
}

func staticMutator(mset *types.MethodSet, required types.Type, names []string) string {
	for _, name := range names {
		sig := lookupSignature(mset, name)
		if sig == nil || sig.Params().Len() != 1 {
			continue
		}

		param := sig.Params().At(0).Type()
		if match.ScoreTypeCompatibility(param, required).Compatible() {
			return name + "(" + param.String() + ")"
		}

		if slice, ok := param.(*types.Slice); ok && sig.Variadic() &&
			match.ScoreTypeCompatibility(slice.Elem(), required).Compatible() {
			return name + "(..." + slice.Elem().String() + ")"
		}
	}

	return ""
}

func lookupSignature(mset *types.MethodSet, name string) *types.Signature {
	for i := range mset.Len() {
		sel := mset.At(i)
		if sel.Obj().Name() != name {
			continue
		}

		sig, _ := sel.Type().(*types.Signature)

		return sig
	}

	return nil
}

// diagnose flags attributes the merge engine can never read or never change.
func diagnose(id TypeID, attr *StaticAttribute, diags *diagnostic.Diagnostics) {
	if !options.AllowDefault.Admits(attr.Category) {
		diags.AddInfo(CodeRestricted,
			fmt.Sprintf("%s attribute is skipped unless allowed", attr.Category),
			id.String(), attr.Name)
	}

	if attr.Reader == "" {
		diags.AddWarning(CodeNoReader,
			"attribute has no reader and is skipped unless selected explicitly",
			id.String(), attr.Name, ReaderNames(attr.FieldName, false)...)

		return
	}

	switch attr.Kind {
	case node.KindCollection:
		if attr.Writer == "" && attr.Adder == "" {
			diags.AddWarning(CodeNoMutator,
				"collection has neither a writer nor an adder",
				id.String(), attr.Name, WriterNames(attr.FieldName)[1], AdderName(attr.FieldName))
		}
	case node.KindComposite:
		if _, isPtr := attr.goType.(*types.Pointer); !isPtr && !attr.Exported && attr.Writer == "" {
			diags.AddWarning(CodeNoWriter,
				"struct value read through a method needs a writer to store merged changes",
				id.String(), attr.Name, WriterNames(attr.FieldName)[1:]...)
		}
	case node.KindMap:
		// maps are reconciled in place
	default:
		if attr.Writer == "" {
			diags.AddWarning(CodeNoWriter,
				"attribute has no writer and is only read",
				id.String(), attr.Name, WriterNames(attr.FieldName)[1:]...)
		}
	}
}

// staticKind is node.Dispatch over go/types.
func staticKind(t types.Type) node.KindEnum {
	switch u := t.Underlying().(type) {
	case *types.Signature, *types.Chan:
		return node.KindUnknown
	case *types.Interface:
		return node.KindDynamic
	case *types.Slice:
		if b, ok := u.Elem().Underlying().(*types.Basic); ok && b.Kind() == types.Uint8 {
			return node.KindAtomic
		}

		return node.KindCollection
	case *types.Map:
		return node.KindMap
	case *types.Struct:
		if isScalarType(t) {
			return node.KindAtomic
		}

		return node.KindComposite
	case *types.Pointer:
		if _, ok := u.Elem().Underlying().(*types.Struct); ok && !isScalarType(u.Elem()) {
			return node.KindComposite
		}

		return node.KindAtomic
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return node.KindUnknown
		}
	}

	return node.KindAtomic
}

func isScalarType(t types.Type) bool {
	named, ok := t.(*types.Named)

	return ok && isScalarNamed(named)
}

func isScalarNamed(named *types.Named) bool {
	obj := named.Obj()

	return obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time"
}

func isErrorType(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
