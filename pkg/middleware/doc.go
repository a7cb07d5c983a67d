// Package middleware provides the observability middleware of the page
// server.
//
// Both middlewares are plain func(http.Handler) http.Handler values and plug
// into a chi router with r.Use.
//
// # Prometheus Metrics
//
// NewMetrics registers request and render metrics:
//   - markup_requests_total: Total requests by route pattern and status
//   - markup_request_duration_seconds: Request duration histogram
//   - markup_renders_total: Renders by target (html, json) and outcome
//   - markup_render_errors_total: Failed renders by error code
//
//	m := middleware.NewMetrics()
//	r.Use(m.Handler)
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry Tracing
//
// NewTracing creates a server span per request. Handlers start a child span
// around rendering with StartRenderSpan:
//
//	ctx, span := tracing.StartRenderSpan(r.Context(), "html", page)
//	html, err := renderer.RenderToHTML(el)
//	middleware.EndSpan(span, err)
//
// A nil *Metrics or *Tracing is valid and records nothing, so callers can
// leave either disabled.
package middleware
