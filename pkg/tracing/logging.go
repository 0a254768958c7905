package tracing

import (
	"context"
	"log/slog"
	"time"
)

var (
	_ Tracer = LoggingTracer{}
	_ Span   = loggingSpan{}
)

// Tracer starts spans that time a named operation.
type Tracer interface {
	StartSpan(operationName string) Span
}

// Span is a timed operation. Call Finish once the operation completes.
type Span interface {
	SetBaggageItem(key string, value any)
	Finish()
}

// LoggingTracer reports finished spans as debug records on a [slog.Logger].
type LoggingTracer struct {
	logger *slog.Logger
}

// NewLoggingTracer returns a [LoggingTracer] writing to logger, or to the
// default logger at the time each span finishes if logger is nil.
func NewLoggingTracer(logger *slog.Logger) *LoggingTracer {
	return &LoggingTracer{
		logger: logger,
	}
}

// StartSpan starts timing operationName. The generator opens one span per
// step ("parse", "render") and attaches the input path or rendered version
// as baggage.
//
//nolint:ireturn
func (l LoggingTracer) StartSpan(operationName string) Span {
	return loggingSpan{
		logger:        l.logger,
		operationName: operationName,
		baggage:       make(map[string]any),
		start:         time.Now(),
	}
}

type loggingSpan struct {
	start         time.Time
	logger        *slog.Logger
	baggage       map[string]any
	operationName string
}

// Finish logs a debug "trace" record with the operation name, its baggage and
// the elapsed time in milliseconds. Failed steps are finished too, so every
// started span produces a record.
func (s loggingSpan) Finish() {
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []any{}
	attrs = append(attrs, baggageToVals(s.baggage)...)
	attrs = append(attrs, "operation_name", s.operationName, "time_ms", time.Since(s.start).Seconds()*1e3)
	logger.Log(context.Background(), slog.LevelDebug, "trace", attrs...)
}

func (s loggingSpan) SetBaggageItem(key string, value any) {
	s.baggage[key] = value
}

func baggageToVals(baggage map[string]any) []any {
	result := make([]any, 0, len(baggage)*2)
	for k, v := range baggage {
		result = append(result, k, v)
	}

	return result
}
