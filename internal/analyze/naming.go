package analyze

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"graph-copier/options"

	"github.com/jinzhu/inflection"
)

// TagName is the struct tag key read for attribute names and flags:
//
//	`merge:"name,key,transient,static,readonly,immutable"`
//	`merge:"-"` removes the field from the attribute set.
const TagName = "merge"

type tagOptions struct {
	name      string
	skip      bool
	transient bool
	static    bool
	immutable bool
	key       bool
}

func parseTags(tag reflect.StructTag) tagOptions {
	var opts tagOptions

	if jsonTag, ok := tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(jsonTag, ",")
		if jsonTag == "-" {
			opts.transient = true
		} else {
			opts.name = name
		}
	}

	mergeTag, ok := tag.Lookup(TagName)
	if !ok {
		return opts
	}

	if mergeTag == "-" {
		opts.skip = true

		return opts
	}

	name, rest, _ := strings.Cut(mergeTag, ",")
	if name != "" {
		opts.name = name
	}

	for rest != "" {
		var flag string

		flag, rest, _ = strings.Cut(rest, ",")
		switch strings.TrimSpace(flag) {
		case "key":
			opts.key = true
		case "transient":
			opts.transient = true
		case "static":
			opts.static = true
		case "readonly", "immutable":
			opts.immutable = true
		}
	}

	return opts
}

func (o tagOptions) category(fieldName string) options.CategoryEnum {
	var c options.CategoryEnum

	if o.transient {
		c |= options.CategoryTransient
	}

	if o.static {
		c |= options.CategoryStatic
	}

	if o.immutable {
		c |= options.CategoryImmutable
	}

	if strings.HasPrefix(fieldName, "_") {
		c |= options.CategoryUnderscored
	}

	return c
}

// Capitalize upper-cases the first letter of a field name, dropping leading underscores,
// so that "orders", "Orders" and "_orders" all map onto methods named "...Orders".
func Capitalize(fieldName string) string {
	s := strings.TrimLeft(fieldName, "_")
	if s == "" {
		return ""
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

// Singular is the capitalized singular form used for adder and remover names.
func Singular(fieldName string) string {
	return Capitalize(inflection.Singular(strings.TrimLeft(fieldName, "_")))
}

// ReaderNames lists the reader method candidates in lookup order.
func ReaderNames(fieldName string, boolean bool) []string {
	c := Capitalize(fieldName)
	if c == "" {
		return nil
	}

	names := []string{c, "Get" + c}
	if boolean {
		names = append(names, "Is"+c)
	}

	return names
}

// WriterNames lists the writer method candidates in lookup order.
func WriterNames(fieldName string) []string {
	c := Capitalize(fieldName)
	if c == "" {
		return nil
	}

	return []string{c, "Set" + c, "With" + c}
}

func AdderName(fieldName string) string {
	return "Add" + Singular(fieldName)
}

func RemoverName(fieldName string) string {
	return "Remove" + Singular(fieldName)
}
