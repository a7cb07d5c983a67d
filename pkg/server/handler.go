package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/courseforge/markup/internal/dev"
	"github.com/courseforge/markup/pkg/document"
	"github.com/courseforge/markup/pkg/markup"
	"github.com/courseforge/markup/pkg/middleware"
	"github.com/courseforge/markup/pkg/pages"
)

const (
	contentTypeHTML = "text/html; charset=UTF-8"
	contentTypeJSON = "application/json"

	indexPage  = "index"
	jsonSuffix = ".json"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, "", err, true)
		return
	}
	if names == nil {
		names = []string{}
	}

	data, err := document.EncodeJSON(names)
	if err != nil {
		s.writeError(w, r, "", err, true)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Write(data)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name, asJSON := pageFromPath(chi.URLParam(r, "*"))
	if asJSON {
		s.serveJSON(w, r, name)
		return
	}
	s.serveHTML(w, r, name)
}

// pageFromPath maps a request path to a page name. Directory paths
// resolve to their index page.
func pageFromPath(p string) (name string, asJSON bool) {
	name, asJSON = strings.CutSuffix(p, jsonSuffix)
	if name == "" || strings.HasSuffix(name, "/") {
		name += indexPage
	}
	return name, asJSON
}

func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, name string) {
	html, err := s.renderHTML(r.Context(), name)
	if err != nil {
		s.writeError(w, r, name, err, false)
		return
	}
	if s.reload != nil {
		html = dev.InjectScript(html)
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.Write([]byte(html))
}

func (s *Server) serveJSON(w http.ResponseWriter, r *http.Request, name string) {
	data, err := s.renderJSON(r.Context(), name)
	if err != nil {
		s.writeError(w, r, name, err, true)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.Write(data)
}

// load fetches and decodes a page.
func (s *Server) load(ctx context.Context, name string) (markup.Element, error) {
	data, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	return document.Decode(data, s.registry)
}

func (s *Server) renderHTML(ctx context.Context, name string) (string, error) {
	el, err := s.load(ctx, name)
	if err != nil {
		return "", err
	}

	_, span := s.config.Tracing.StartRenderSpan(ctx, "html", name)
	html, err := s.renderer.RenderToHTML(el)
	if err == nil && s.config.Minify {
		html, err = s.config.Minifier.String(html)
	}
	middleware.EndSpan(span, err)
	s.config.Metrics.RecordRender("html", err)
	if err != nil {
		return "", err
	}
	return html, nil
}

func (s *Server) renderJSON(ctx context.Context, name string) ([]byte, error) {
	el, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	_, span := s.config.Tracing.StartRenderSpan(ctx, "json", name)
	tree, err := s.renderer.RenderToJSON(el)
	var data []byte
	if err == nil {
		data, err = document.EncodeJSON(tree)
	}
	middleware.EndSpan(span, err)
	s.config.Metrics.RecordRender("json", err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, pages.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, pages.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err as compact text, or as a JSON object on JSON
// routes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, name string, err error, asJSON bool) {
	status := statusFor(err)
	e := asError(err)

	attrs := []any{"page", name, "code", e.Code, "status", status, "error", err}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
	} else {
		s.logger.Debug("request failed", attrs...)
	}

	if asJSON {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(status)
		w.Write([]byte(e.FormatJSON()))
		return
	}
	http.Error(w, e.FormatCompact(), status)
}

// logRequests logs each request with its outcome.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
