package swapmap

import "log/slog"

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures store constructor behavior.
//
// Options exist to avoid exploding the constructor surface; the zero
// configuration (no logging, no metrics) is the common case.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &swapmap.BasicMetricsCollector{}
//	s := swapmap.New[string, int](swapmap.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Gets: %d, hits: %d\n", stats.GetCount, stats.GetHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for structural events.
//
// Example with JSON logging:
//
//	logger := swapmap.NewJSONLogger(slog.LevelDebug)
//	s := swapmap.New[string, int](swapmap.WithLogger(logger))
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
