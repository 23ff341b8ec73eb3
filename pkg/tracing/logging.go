package tracing

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = (*loggingSpan)(nil)
)

// LoggingTracer writes finished spans to a [slog.Logger] at debug level.
type LoggingTracer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewLoggingTracer creates a [LoggingTracer]. A nil logger means the default
// logger at the time each span finishes.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
		now:    time.Now,
	}
}

//nolint:ireturn // Interface by contract.
func (l LoggingTracer) StartSpan(operationName string) Span {
	now := l.now
	if now == nil {
		now = time.Now
	}

	return &loggingSpan{
		logger:        l.logger,
		operationName: operationName,
		baggage:       map[string]any{},
		now:           now,
		start:         now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	baggage       map[string]any
	now           func() time.Time
	operationName string
	mu            sync.Mutex
}

func (s *loggingSpan) Finish() {
	s.mu.Lock()
	attrs := baggageToAttrs(s.baggage)
	s.mu.Unlock()

	attrs = append(attrs,
		slog.String("operation_name", s.operationName),
		slog.Float64("time_ms", float64(s.now().Sub(s.start).Microseconds())/1e3),
	)

	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.LogAttrs(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s *loggingSpan) SetBaggageItem(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baggage[key] = value
}

func baggageToAttrs(baggage map[string]any) []slog.Attr {
	keys := make([]string, 0, len(baggage))
	for k := range baggage {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	result := make([]slog.Attr, 0, len(baggage)+2)
	for _, k := range keys {
		result = append(result, slog.Any(k, baggage[k]))
	}

	return result
}
