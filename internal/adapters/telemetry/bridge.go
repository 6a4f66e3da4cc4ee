// Package telemetry bridges OpenTelemetry spans to the application logger.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/denv/internal/core/ports"
)

// LogBridge is a SpanProcessor that reports completed spans to the logger.
// It gives loader invocations a duration trail without requiring an
// external collector.
type LogBridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// NewLogBridge creates a bridge writing to the given logger.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart implements sdktrace.SpanProcessor.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd implements sdktrace.SpanProcessor.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	duration := s.EndTime().Sub(s.StartTime())
	b.logger.Info(fmt.Sprintf("%s took %s", s.Name(), duration.Round(time.Microsecond)))
}

// Shutdown implements sdktrace.SpanProcessor.
func (b *LogBridge) Shutdown(_ context.Context) error { return nil }

// ForceFlush implements sdktrace.SpanProcessor.
func (b *LogBridge) ForceFlush(_ context.Context) error { return nil }

// Install registers a global tracer provider that forwards all spans to
// the bridge.
func Install(logger ports.Logger) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewLogBridge(logger)),
	)
	otel.SetTracerProvider(tp)
}
