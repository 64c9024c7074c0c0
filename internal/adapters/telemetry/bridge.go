package telemetry

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/qsnap/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// LogBridge implements sdktrace.SpanProcessor by writing each ended span to the debug log.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart does nothing.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, its duration, its attributes and its failure, if any.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(FormatSpan(s.Name(), s.EndTime().Sub(s.StartTime()), s.Attributes(), s.Status()))
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

// FormatSpan renders one ended span as a single log line.
func FormatSpan(name string, took time.Duration, attrs []attribute.KeyValue, status sdktrace.Status) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(" ")
	b.WriteString(took.Round(time.Millisecond).String())

	sorted := slices.Clone(attrs)
	slices.SortFunc(sorted, func(x, y attribute.KeyValue) int {
		return strings.Compare(string(x.Key), string(y.Key))
	})
	for _, kv := range sorted {
		b.WriteString(" ")
		b.WriteString(string(kv.Key))
		b.WriteString("=")
		b.WriteString(kv.Value.Emit())
	}

	if status.Code == codes.Error {
		b.WriteString(" failed")
		if status.Description != "" {
			b.WriteString(": ")
			b.WriteString(status.Description)
		}
	}
	return b.String()
}
