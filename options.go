package jsdata

import (
	"log/slog"

	"github.com/ready-research/js-data/codec"
)

type options struct {
	idAttribute      string
	onConflict       ConflictPolicy
	mapper           Mapper
	broadcaster      Broadcaster
	hooks            Hooks
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures collection constructor behavior.
//
// Configuration is bound at construction and immutable afterwards: there is
// no setter that changes the id attribute or the conflict policy of a live
// collection.
type Option func(*options)

// WithIDAttribute configures the field holding the primary key.
// The default is "id". A bound mapper's id attribute takes precedence.
func WithIDAttribute(attr string) Option {
	return func(o *options) {
		o.idAttribute = attr
	}
}

// WithConflictPolicy configures how Add treats an incoming record whose
// primary key already exists: ConflictMerge (the default) or
// ConflictReplace. Individual Add calls can override it with OnConflict.
func WithConflictPolicy(policy ConflictPolicy) Option {
	return func(o *options) {
		o.onConflict = policy
	}
}

// WithMapper binds a mapper to the collection. The mapper's id attribute
// overrides WithIDAttribute, and genuinely new records pass through the
// mapper's CreateRecord before insertion.
func WithMapper(m Mapper) Option {
	return func(o *options) {
		o.mapper = m
	}
}

// WithBroadcaster configures the sink for collection events ("add",
// "remove") and for events forwarded from observable records. Pass nil to
// keep events disabled.
func WithBroadcaster(b Broadcaster) Option {
	return func(o *options) {
		if b == nil {
			b = NoopBroadcaster{}
		}
		o.broadcaster = b
	}
}

// WithHooks installs lifecycle hooks around add and remove operations.
func WithHooks(h Hooks) Option {
	return func(o *options) {
		o.hooks = h
	}
}

// WithCodec configures the codec used for ToJSON exports.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &jsdata.BasicMetricsCollector{}
//	coll, _ := jsdata.New(jsdata.WithMetricsCollector(metrics))
//	// ... use coll ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, Avg latency: %dns\n", stats.AddCount, stats.AddAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := jsdata.NewJSONLogger(slog.LevelInfo)
//	coll, _ := jsdata.New(jsdata.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		idAttribute:      DefaultIDAttribute,
		onConflict:       ConflictMerge,
		broadcaster:      NoopBroadcaster{},
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
