package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courseforge/markup/internal/dev"
	"github.com/courseforge/markup/internal/errors"
	"github.com/courseforge/markup/pkg/document"
	"github.com/courseforge/markup/pkg/markup"
	"github.com/courseforge/markup/pkg/pages"
)

// PagesPath lists the available pages as JSON.
const PagesPath = "/_markup/pages"

// Server renders pages from a Store over HTTP.
type Server struct {
	config   Config
	store    pages.Store
	registry *document.Registry
	renderer *markup.Renderer
	reload   *dev.ReloadServer
	router   chi.Router
	logger   *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	failing    bool
}

// New creates a Server for store. registry resolves "@Name" components in
// documents and may be nil.
func New(config Config, store pages.Store, registry *document.Registry, logger *slog.Logger) *Server {
	config = config.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	s := &Server{
		config:   config,
		store:    store,
		registry: registry,
		renderer: markup.NewRenderer(markup.RendererConfig{
			MaxDepth: config.MaxDepth,
			Logger:   logger,
		}),
		logger: logger,
	}
	if config.Watch {
		s.reload = dev.NewReloadServer(logger)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(s.config.Metrics.Handler, s.config.Tracing.Handler)
	r.Use(s.logRequests, s.canonicalize)

	r.Get("/healthz", s.handleHealth)
	r.Get(PagesPath, s.handlePages)
	if s.config.Metrics != nil {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	if s.reload != nil {
		r.Handle(dev.ReloadPath, s.reload)
	}
	r.Get("/", s.handlePage)
	r.Get("/*", s.handlePage)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Reload returns the live reload server, or nil outside watch mode.
func (s *Server) Reload() *dev.ReloadServer {
	return s.reload
}

// ListenAndServe listens on Config.Addr and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	// Reload connections are hijacked and would not be closed by Shutdown.
	if s.reload != nil {
		s.reload.Close()
	}

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Watch delivers file changes from w to the reload channel and blocks until
// ctx is cancelled or w is stopped.
func (s *Server) Watch(ctx context.Context, w *dev.Watcher) error {
	w.OnChange(s.HandleChanges)
	return w.Start(ctx)
}

// HandleChanges re-renders changed pages and tells browsers to reload, or
// to show the first render error instead.
func (s *Server) HandleChanges(changes []dev.Change) {
	if s.reload == nil {
		return
	}

	page := ""
	for _, c := range changes {
		if c.Type != dev.ChangePage || c.Removed {
			continue
		}
		name, ok := s.pageName(c.Path)
		if !ok {
			continue
		}
		if _, err := s.renderHTML(context.Background(), name); err != nil {
			e := asError(err)
			s.logger.Warn("page failed to render", "page", name, "code", e.Code, "error", err)
			s.setFailing(true)
			s.reload.NotifyError(name, e.FormatCompact())
			return
		}
		page = name
	}

	if s.setFailing(false) {
		s.reload.ClearError()
	}
	s.logger.Debug("reloading clients", "page", page, "changes", len(changes))
	s.reload.NotifyReload(page)
}

// setFailing records whether the last change batch failed to render and
// reports the previous state.
func (s *Server) setFailing(failing bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.failing
	s.failing = failing
	return was
}

// pageName maps a changed file to its page name. Only directory stores
// have files on disk.
func (s *Server) pageName(file string) (string, bool) {
	dir, ok := s.store.(*pages.DirStore)
	if !ok {
		return "", false
	}
	rel, err := filepath.Rel(dir.Root(), file)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return pages.TrimExtension(filepath.ToSlash(rel))
}

// asError returns the *errors.Error in err's chain, or wraps err in one.
func asError(err error) *errors.Error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return errors.Newf(errors.CategoryRender, "%v", err)
}
