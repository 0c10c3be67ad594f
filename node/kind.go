package node

import "strconv"

// KindEnum is the routing class of an attribute, resolved once from its declared type.
type KindEnum int

const (
	KindUnknown    KindEnum = iota
	KindAtomic              // compared and overwritten as a whole
	KindCollection          // slice of non-byte elements, reconciled element by element
	KindMap                 // map, reconciled entry by entry
	KindComposite           // struct or pointer to struct, merged recursively
	KindDynamic             // interface, routed by the dynamic values at merge time

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindAtomic:     "atomic",
	KindCollection: "collection",
	KindMap:        "map",
	KindComposite:  "composite",
	KindDynamic:    "dynamic",
}

func (k KindEnum) String() string {
	if k < 0 || int(k) >= KindTotal {
		return "KindEnum(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// IsReconcilable reports whether the kind is reconciled in place when collections are merged.
func (k KindEnum) IsReconcilable() bool {
	return k == KindCollection || k == KindMap
}

// IsRecursive reports whether values of the kind may be merged attribute by attribute.
func (k KindEnum) IsRecursive() bool {
	return k == KindComposite || k == KindDynamic
}
