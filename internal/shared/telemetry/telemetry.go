// Package telemetry carries the tracing and logging plumbing shared by the
// service decorators under internal/domains/*/adapters/observability.
package telemetry

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Recorder starts spans and writes structured logs for a single decorator.
type Recorder struct {
	Tracer trace.Tracer
	Logger *slog.Logger
}

// NewRecorder returns a recorder that discards everything until configured.
func NewRecorder(tracerName string) Recorder {
	return Recorder{
		Tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Start opens a span named name.
func (r Recorder) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return r.Tracer.Start(ctx, name, opts...)
}

// Info logs msg at info level.
func (r Recorder) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.Logger == nil {
		return
	}
	r.Logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Fail marks span as failed, logs msg with err and returns err unchanged.
func (r Recorder) Fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if r.Logger != nil {
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
		r.Logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}
