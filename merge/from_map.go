package merge

import (
	"reflect"
	"sort"

	"graph-copier/internal/analyze"
	"graph-copier/internal/match"
	"graph-copier/node"
	"graph-copier/options"
	"graph-copier/primitive"

	"go.uber.org/zap"
)

// MergeMap merges values, keyed by attribute name, into the top level of dst.
//
// The keys select the attributes; with exclusion (options.Excluding) they select the attributes
// left alone, and every other attribute is set from its absent, zero value. Paths given through
// options are ignored. Values are converted to the attribute types under the coercion categories
// of the options. Collections and maps are reconciled when collection merging is enabled and
// overwritten otherwise; nothing is merged recursively.
func MergeMap(dst any, values map[string]any, opts ...options.Option) error {
	o := options.New(opts...)

	d, ok, err := destination(dst)
	if err != nil || !ok || values == nil {
		return err
	}

	table, err := tableOf(d.Type())
	if err != nil {
		return err
	}

	if err := checkKeys(table, values); err != nil {
		return err
	}

	o.Logger.Debug("merge map",
		zap.String("type", node.TypeString(d.Type().Elem())),
		zap.Int("keys", len(values)),
		zap.Bool("exclusion", o.Exclusion))

	m := newMerger(o)

	for _, attr := range table.Attributes {
		raw, present := values[attr.Name]
		if present == o.Exclusion || !o.Allow.Admits(attr.Category) {
			continue
		}

		a := attribute{
			Attribute: attr,
			host:      d,
			path:      attr.Name,
			required:  present,
		}

		if err := m.mergeValue(a, raw); err != nil {
			return err
		}
	}

	return nil
}

func (m *merger) mergeValue(a attribute, raw any) error {
	if a.Reader == nil {
		return m.skip(a, ErrMissingAccessor, "no reader")
	}

	v1, err := a.Reader.Get(a.host)
	if err != nil {
		return attributeError(a.host.Type(), a.path, err)
	}

	if m.opts.NullsOnly && initialized(v1) {
		return nil
	}

	v2, err := primitive.Convert(reflect.ValueOf(raw), a.Type, m.opts.Coercion)
	if err != nil {
		return attributeError(a.host.Type(), a.path, errIncompatible(err))
	}

	route := m.route(a.Kind)
	m.log.Debug("attribute", zap.String("path", a.path), zap.Stringer("route", route))

	switch route {
	case routeCollection:
		if raw == nil {
			return nil
		}

		return m.reconcileCollection(a, v1, v2, nil, false)
	case routeMap:
		if raw == nil {
			return nil
		}

		return m.reconcileMap(a, v1, v2)
	default:
		return m.overwrite(a, v1, v2)
	}
}

// checkKeys rejects keys naming no attribute, suggesting close names.
func checkKeys(table *analyze.Table, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := table.Lookup(key); ok {
			continue
		}

		return &AttributeError{
			Type:        table.Type,
			Path:        key,
			Err:         ErrAttributeNotFound,
			Suggestions: match.Suggest(key, table.Names()),
		}
	}

	return nil
}
