// Package options configures the two Open Questions spec.md §9 leaves
// to the implementation: duplicate-key detection and a compatibility
// switch for the source's older, relaxed grammar variants.
package options

import "github.com/Vorschreibung/siml/pkg/tracer"

// Options configures Parser construction. Build one with
// DefaultOptions and the With* fluent setters, mirroring the
// functional-options pattern of the former merge.Options type.
type Options struct {
	// DetectDuplicateKeys, when true, latches CODE_DUPLICATE_KEY the
	// second time a key appears in the same mapping frame. Default on,
	// per spec.md §9's recommendation to promote the strictest
	// observed variant.
	DetectDuplicateKeys bool

	// Strict selects the single normalized grammar of spec.md §6. When
	// false, a scalar document root is accepted instead of latching
	// CODE_DOC_SCALAR. It has no effect on block literals: in both
	// modes a "#" line at or beyond the block's content indent is block
	// content, and a less-indented one ends the block.
	Strict bool

	// MaxDepth bounds the container stack. spec.md §3 requires at
	// least 32; DefaultOptions uses exactly that.
	MaxDepth int

	// Tracer, when non-nil, receives a call at each parser sub-machine
	// transition. See pkg/tracer.
	Tracer tracer.Tracer
}

// DefaultOptions returns the spec's default behavior: duplicate-key
// detection on, strict grammar, depth 32, no tracer.
func DefaultOptions() *Options {
	return &Options{
		DetectDuplicateKeys: true,
		Strict:              true,
		MaxDepth:            32,
	}
}

// Option mutates an Options value built from DefaultOptions.
type Option func(*Options)

// Apply returns a fresh Options with every Option applied in order.
func Apply(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDuplicateKeyDetection toggles CODE_DUPLICATE_KEY latching.
func WithDuplicateKeyDetection(enabled bool) Option {
	return func(o *Options) { o.DetectDuplicateKeys = enabled }
}

// WithStrict toggles the normalized-grammar-only behavior.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// WithMaxDepth overrides the container nesting ceiling. Values below
// the spec's minimum of 32 are rejected by the caller's own judgment;
// the parser itself just honors whatever is set here.
func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithTracer injects a tracer capability object, replacing the
// source's global DEBUG flag (spec.md §9).
func WithTracer(t tracer.Tracer) Option {
	return func(o *Options) { o.Tracer = t }
}
