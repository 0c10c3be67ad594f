package options

import (
	"fmt"
	"strings"
)

// CategoryEnum flags the structural categories an attribute belongs to.
// An attribute without any flag is plain.
type CategoryEnum int

const (
	CategoryTransient   CategoryEnum = 1 << iota // json:"-" or merge:",transient": not part of the persistent state
	CategoryStatic                               // merge:",static": shared, type-level state
	CategoryImmutable                            // merge:",readonly": direct field writes are refused
	CategoryUnderscored                          // Go field name starts with an underscore

	CategoryAll   = (1 << iota) - 1 // all categories combined
	CategoryPlain = 0               // no category
)

// AllowEnum is a visibility policy: the categories an eligible attribute may belong to.
type AllowEnum int

const (
	AllowTransient   = AllowEnum(CategoryTransient)
	AllowStatic      = AllowEnum(CategoryStatic)
	AllowImmutable   = AllowEnum(CategoryImmutable)
	AllowUnderscored = AllowEnum(CategoryUnderscored)

	AllowNone    AllowEnum = 0                          // only plain attributes are eligible
	AllowAll               = AllowEnum(CategoryAll)     // every attribute is eligible
	AllowDefault           = AllowStatic | AllowImmutable // transient and underscored attributes are refused
)

var categoryNames = []struct {
	name     string
	category CategoryEnum
}{
	{"transient", CategoryTransient},
	{"static", CategoryStatic},
	{"immutable", CategoryImmutable},
	{"underscored", CategoryUnderscored},
}

// Admits reports whether an attribute of category c passes the policy:
// every category c belongs to must be allowed.
func (a AllowEnum) Admits(c CategoryEnum) bool {
	return c&^CategoryEnum(a) == 0
}

func (a AllowEnum) String() string {
	switch a {
	case AllowNone:
		return "none"
	case AllowAll:
		return "all"
	}

	return CategoryEnum(a).String()
}

func (c CategoryEnum) String() string {
	if c == CategoryPlain {
		return "plain"
	}

	var parts []string

	for _, entry := range categoryNames {
		if c&entry.category != 0 {
			parts = append(parts, entry.name)
		}
	}

	if rest := c &^ CategoryAll; rest != 0 {
		parts = append(parts, fmt.Sprintf("CategoryEnum(%d)", int(rest)))
	}

	return strings.Join(parts, "|")
}

// ParseAllow combines named categories into a policy. "none", "all" and "default" name the presets.
func ParseAllow(names ...string) (AllowEnum, error) {
	var res AllowEnum

	for _, name := range names {
		switch name = strings.ToLower(strings.TrimSpace(name)); name {
		case "", "none":
			continue
		case "all":
			res |= AllowAll
			continue
		case "default":
			res |= AllowDefault
			continue
		}

		found := false

		for _, entry := range categoryNames {
			if entry.name == name {
				res |= AllowEnum(entry.category)
				found = true

				break
			}
		}

		if !found {
			return 0, fmt.Errorf("unknown attribute category %q", name)
		}
	}

	return res, nil
}
