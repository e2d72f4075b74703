// Package observability instruments the compile pipeline with OpenTelemetry,
// adapted from the teacher's src/driver/observability.go: the same
// tracer/meter instrument set and span lifecycle, repointed at compiling a
// query (lex+parse+resolve+transform) instead of executing one over the
// wire.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/cypherplan/cyq/src/observability"
	instrumentationVersion = "0.1.0"
)

// Config controls which signals are collected.
type Config struct {
	EnableTracing    bool
	EnableMetrics    bool
	TracingAttrs     []attribute.KeyValue
	MetricAttrs      []attribute.KeyValue
}

// DefaultConfig enables both tracing and metrics with a fixed set of
// identifying attributes.
func DefaultConfig() *Config {
	return &Config{
		EnableTracing: true,
		EnableMetrics: true,
		TracingAttrs: []attribute.KeyValue{
			attribute.String("cyq.component", "compiler"),
		},
		MetricAttrs: []attribute.KeyValue{
			attribute.String("cyq.component", "compiler"),
		},
	}
}

// Instruments holds the OpenTelemetry tracer/meter and the metric
// instruments recorded across a compile.
type Instruments struct {
	tracer trace.Tracer
	meter  metric.Meter

	compileDuration metric.Float64Histogram
	compileCount    metric.Int64Counter
	compileErrors   metric.Int64Counter
	vleSteps        metric.Int64Counter
	planNodes       metric.Int64Counter
}

// New initializes the OpenTelemetry instruments used across a compile.
func New() *Instruments {
	tracer := otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))
	meter := otel.Meter(instrumentationName, metric.WithInstrumentationVersion(instrumentationVersion))

	in := &Instruments{tracer: tracer, meter: meter}

	var err error
	in.compileDuration, err = meter.Float64Histogram("cyq.compile.duration",
		metric.WithDescription("Duration of compiling a Cypher query into a plan"), metric.WithUnit("s"))
	if err != nil {
		otel.Handle(err)
	}
	in.compileCount, err = meter.Int64Counter("cyq.compile.count",
		metric.WithDescription("Number of queries compiled"))
	if err != nil {
		otel.Handle(err)
	}
	in.compileErrors, err = meter.Int64Counter("cyq.compile.errors",
		metric.WithDescription("Number of compile failures, by category"))
	if err != nil {
		otel.Handle(err)
	}
	in.vleSteps, err = meter.Int64Counter("cyq.vle.steps",
		metric.WithDescription("Number of DFS steps taken by the variable-length path engine"))
	if err != nil {
		otel.Handle(err)
	}
	in.planNodes, err = meter.Int64Counter("cyq.plan.nodes",
		metric.WithDescription("Number of plan tree nodes produced"))
	if err != nil {
		otel.Handle(err)
	}
	return in
}

// Span wraps an in-flight compile span.
type Span struct {
	span      trace.Span
	startTime time.Time
}

// StartCompile opens a span covering one full compile call.
func (in *Instruments) StartCompile(ctx context.Context, query string, cfg *Config) (context.Context, *Span) {
	if !cfg.EnableTracing {
		return ctx, &Span{startTime: time.Now()}
	}
	attrs := append(append([]attribute.KeyValue{}, cfg.TracingAttrs...),
		attribute.String("cyq.query", query),
		attribute.Int("cyq.query.length", len(query)),
	)
	ctx, span := in.tracer.Start(ctx, "cyq.compile", trace.WithAttributes(attrs...), trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span, startTime: time.Now()}
}

// FinishCompile closes a compile span and records its metrics, using err's
// cyqerr.Category (via category, resolved by the caller) to tag failures.
func (in *Instruments) FinishCompile(sp *Span, category string, err error, cfg *Config) {
	duration := time.Since(sp.startTime)

	if cfg.EnableMetrics {
		attrs := metric.WithAttributes(cfg.MetricAttrs...)
		in.compileDuration.Record(context.Background(), duration.Seconds(), attrs)
		if err != nil {
			in.compileErrors.Add(context.Background(), 1, metric.WithAttributes(append(cfg.MetricAttrs, attribute.String("cyq.error.category", category))...))
		} else {
			in.compileCount.Add(context.Background(), 1, attrs)
		}
	}

	if cfg.EnableTracing && sp.span != nil {
		sp.span.SetAttributes(attribute.Float64("cyq.compile.duration_ms", float64(duration.Nanoseconds())/1e6))
		if err != nil {
			sp.span.RecordError(err)
			sp.span.SetStatus(codes.Error, err.Error())
		} else {
			sp.span.SetStatus(codes.Ok, "")
		}
		sp.span.End()
	}
}

// RecordVLESteps records how many DFS steps the variable-length path engine
// took for one traversal.
func (in *Instruments) RecordVLESteps(n int64, cfg *Config) {
	if cfg.EnableMetrics {
		in.vleSteps.Add(context.Background(), n, metric.WithAttributes(cfg.MetricAttrs...))
	}
}

// RecordPlanNodes records how many nodes a freshly built plan tree contains.
func (in *Instruments) RecordPlanNodes(n int64, cfg *Config) {
	if cfg.EnableMetrics {
		in.planNodes.Add(context.Background(), n, metric.WithAttributes(cfg.MetricAttrs...))
	}
}
