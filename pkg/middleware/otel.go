package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "markup"

// TracingConfig configures the OpenTelemetry middleware.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "markup").
	TracerName string

	// Tracer overrides the tracer resolved from the global provider.
	Tracer trace.Tracer

	// Filter determines which requests to trace.
	// Return true to trace the request, false to skip.
	// If nil, all requests are traced.
	Filter func(r *http.Request) bool
}

// TracingOption configures the OpenTelemetry middleware.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) TracingOption {
	return func(c *TracingConfig) {
		c.Tracer = tracer
	}
}

// WithRequestFilter sets a filter function for requests.
func WithRequestFilter(filter func(r *http.Request) bool) TracingOption {
	return func(c *TracingConfig) {
		c.Filter = filter
	}
}

// Tracing creates spans for requests and renders. A nil *Tracing traces
// nothing.
type Tracing struct {
	config TracingConfig
	tracer trace.Tracer
}

// NewTracing creates the tracing middleware.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracer is given. Configure the provider in main() before starting
// the server:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracing(opts ...TracingOption) *Tracing {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}
	return &Tracing{config: config, tracer: tracer}
}

// Handler is chi-compatible middleware creating one server span per request.
// Responses with a 5xx status mark the span as failed.
func (t *Tracing) Handler(next http.Handler) http.Handler {
	if t == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.config.Filter != nil && !t.config.Filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := t.tracer.Start(r.Context(), "markup "+r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.String("http.route", routePattern(r)),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	})
}

// StartRenderSpan starts a child span for rendering page to target.
// End it with EndSpan.
func (t *Tracing) StartRenderSpan(ctx context.Context, target, page string) (context.Context, trace.Span) {
	if t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "markup.render."+target,
		trace.WithAttributes(
			attribute.String("markup.target", target),
			attribute.String("markup.page", page),
		),
	)
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, errorCode(err))
	}
	span.End()
}

// SpanFromContext retrieves the current trace span from the context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
