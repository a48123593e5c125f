package animalform

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultName = "animalcreate"
	tracerName  = "github.com/pthm/animalform"
)

// Option configures a Form or a Component.
type Option func(*options)

type options struct {
	name      string
	sensitive bool
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

func newOptions(opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	return o
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records submissions and input events in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracer sets the tracer used for component actions. Defaults to the
// global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithName sets the component name used in its URL prefix and element id.
// Only Component uses it.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// Sensitive encrypts the state carried in the page instead of only signing
// it. Only Component uses it.
func Sensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}
