package node

import (
	"log/slog"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-synology/pkg/schema"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the node executor
type Opt func(*opts) error

type opts struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	clientOpts []client.ClientOpt

	// Instruments, set when a meter is provided
	items  metric.Int64Counter
	errors metric.Int64Counter
}

////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the structured logger. The default discards records.
func WithLogger(logger *slog.Logger) Opt {
	return func(o *opts) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithTracer sets the tracer used for a span per executed item
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithMeter sets the meter used to count executed and failed items
func WithMeter(meter metric.Meter) Opt {
	return func(o *opts) error {
		o.meter = meter
		return nil
	}
}

// WithClientOpts appends options for the DSM HTTP client, such as a timeout
// or request tracing
func WithClientOpts(clientOpts ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.clientOpts = append(o.clientOpts, clientOpts...)
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opt []Opt) (opts, error) {
	// Set defaults
	o := opts{
		logger: slog.New(slog.DiscardHandler),
	}

	// Apply options
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return opts{}, err
		}
	}

	// Create instruments
	if o.meter != nil {
		if counter, err := o.meter.Int64Counter(schema.SchemaName+".items", metric.WithDescription("File Station items executed"), metric.WithUnit("{item}")); err != nil {
			return opts{}, err
		} else {
			o.items = counter
		}
		if counter, err := o.meter.Int64Counter(schema.SchemaName+".errors", metric.WithDescription("File Station items failed"), metric.WithUnit("{item}")); err != nil {
			return opts{}, err
		} else {
			o.errors = counter
		}
	}

	// Return success
	return o, nil
}
