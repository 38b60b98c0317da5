package sink

// Option configures a sink.
type Option func(*options)

type options struct {
	scale  int
	indent bool
}

func newOptions(opts []Option) options {
	o := options{scale: 1, indent: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithScale multiplies the output size by n using nearest-neighbour sampling.
// Values below 1 are treated as 1. SVG output scales its viewport instead.
func WithScale(n int) Option {
	return func(o *options) { o.scale = max(n, 1) }
}

// WithCompactJSON disables pretty-printing of JSON output.
func WithCompactJSON() Option {
	return func(o *options) { o.indent = false }
}
