package options

import (
	"graph-copier/primitive"

	"go.uber.org/zap"
)

// Options controls a single merge call. Use New with Option values to build one.
type Options struct {
	// Paths restricts (or, in exclusion mode, excludes) the dotted attribute paths to merge.
	// No paths selects every eligible attribute at every depth.
	Paths     []string
	Exclusion bool

	// NullsOnly merges an attribute only when the destination value is not initialized.
	NullsOnly bool
	// MergeCollections reconciles slices and maps element by element instead of overwriting them.
	MergeCollections bool
	// UpdateCollections also removes destination elements absent from the source. Implies MergeCollections.
	UpdateCollections bool

	Allow    AllowEnum
	Coercion primitive.CategoryEnum
	Logger   *zap.Logger
}

type Option func(*Options)

// New applies opts over the defaults: no paths, AllowDefault visibility,
// primitive.DefaultCategories coercion and a no-op logger.
func New(opts ...Option) *Options {
	o := &Options{
		Allow:    AllowDefault,
		Coercion: primitive.DefaultCategories,
		Logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.UpdateCollections {
		o.MergeCollections = true
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// WithPaths selects the dotted attribute paths to merge, e.g. "address.line".
func WithPaths(paths ...string) Option {
	return func(o *Options) { o.Paths = append(o.Paths, paths...) }
}

// Excluding merges everything except the given dotted attribute paths.
func Excluding(paths ...string) Option {
	return func(o *Options) {
		o.Paths = append(o.Paths, paths...)
		o.Exclusion = true
	}
}

func NullsOnly() Option {
	return func(o *Options) { o.NullsOnly = true }
}

func MergeCollections() Option {
	return func(o *Options) { o.MergeCollections = true }
}

func UpdateCollections() Option {
	return func(o *Options) {
		o.MergeCollections = true
		o.UpdateCollections = true
	}
}

// Allowing replaces the visibility policy.
func Allowing(allow AllowEnum) Option {
	return func(o *Options) { o.Allow = allow }
}

// WithCoercion replaces the conversion categories used when merging from a map.
func WithCoercion(categories primitive.CategoryEnum) Option {
	return func(o *Options) { o.Coercion = categories }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
