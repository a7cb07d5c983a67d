package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/courseforge/markup/internal/errors"
)

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	r := chi.NewRouter()
	r.Use(m.Handler)
	r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "page") == "missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	})

	for _, path := range []string{"/a", "/b", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/{page}", "200")); got != 2 {
		t.Errorf("requests_total{200} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/{page}", "404")); got != 1 {
		t.Errorf("requests_total{404} = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("request_duration_seconds series = %d, want 1", n)
	}
}

func TestMetricsRecordRender(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	m.RecordRender("html", nil)
	m.RecordRender("html", errors.New(errors.CodeVoidTagHasChildren))
	m.RecordRender("json", stderrors.New("boom"))

	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("html", "success")); got != 1 {
		t.Errorf("renders_total{html,success} = %v", got)
	}
	if got := testutil.ToFloat64(m.rendersTotal.WithLabelValues("html", "error")); got != 1 {
		t.Errorf("renders_total{html,error} = %v", got)
	}
	if got := testutil.ToFloat64(m.renderErrors.WithLabelValues(errors.CodeVoidTagHasChildren)); got != 1 {
		t.Errorf("render_errors_total{M010} = %v", got)
	}
	if got := testutil.ToFloat64(m.renderErrors.WithLabelValues("unknown")); got != 1 {
		t.Errorf("render_errors_total{unknown} = %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"markup_renders_total", "markup_render_errors_total"} {
		if !names[want] {
			t.Errorf("missing metric family %q in %v", want, names)
		}
	}
}

func TestNilMiddlewareIsPassThrough(t *testing.T) {
	var m *Metrics
	var tr *Tracing

	called := false
	h := tr.Handler(m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("handler was not called")
	}

	m.RecordRender("html", nil)
	ctx, span := tr.StartRenderSpan(context.Background(), "html", "index")
	EndSpan(span, nil)
	if ctx == nil {
		t.Error("StartRenderSpan returned nil context")
	}
}

type recordedSpan struct {
	noop.Span
	name   string
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}
func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	span := &recordedSpan{name: name}
	t.mu.Lock()
	t.spans = append(t.spans, span)
	t.mu.Unlock()
	return trace.ContextWithSpan(ctx, span), span
}

func TestTracingHandler(t *testing.T) {
	tracer := &recordingTracer{}
	tr := NewTracing(WithTracer(tracer), WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))

	r := chi.NewRouter()
	r.Use(tr.Handler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
		if SpanFromContext(r.Context()) != trace.Span(tracer.spans[0]) {
			t.Error("request context should carry the server span")
		}
		_, span := tr.StartRenderSpan(r.Context(), "html", chi.URLParam(r, "page"))
		EndSpan(span, errors.New(errors.CodeInvalidTagName))
		http.Error(w, "render failed", http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/index", nil))

	if len(tracer.spans) != 2 {
		t.Fatalf("spans = %d, want 2 (healthz filtered)", len(tracer.spans))
	}
	server, render := tracer.spans[0], tracer.spans[1]
	if server.name != "markup GET /index" {
		t.Errorf("server span name = %q", server.name)
	}
	if server.status != codes.Error || !server.ended {
		t.Errorf("server span status = %v ended = %v", server.status, server.ended)
	}
	if render.name != "markup.render.html" {
		t.Errorf("render span name = %q", render.name)
	}
	if len(render.errs) != 1 || render.status != codes.Error || !render.ended {
		t.Errorf("render span = %+v", render)
	}
}

func TestTracingDefaultsToGlobalProvider(t *testing.T) {
	tr := NewTracing(WithTracerName("custom"))
	if tr.tracer == nil {
		t.Fatal("tracer should be resolved from the global provider")
	}
	if tr.config.TracerName != "custom" {
		t.Errorf("TracerName = %q", tr.config.TracerName)
	}
}
