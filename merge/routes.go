package merge

import "graph-copier/internal/common"

// routeEnum is how an attribute value is merged.
type routeEnum int

const (
	routeOverwrite  routeEnum = iota // compared and written as a whole
	routeCollection                  // reconciled element by element
	routeMap                         // reconciled entry by entry
	routeComposite                   // merged recursively
	routeDynamic                     // routed on the dynamic values

	routeTotal = int(iota)
)

var routeNames = [...]string{
	routeOverwrite:  "overwrite",
	routeCollection: "collection",
	routeMap:        "map",
	routeComposite:  "composite",
	routeDynamic:    "dynamic",
}

func (r routeEnum) String() string {
	if r < 0 || int(r) >= routeTotal {
		return common.UnknownStr
	}

	return routeNames[r]
}
