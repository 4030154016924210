// Package server exposes the authentication pages over HTTP. Every request is
// one mount: it gets its own error boundary and its own form controller.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goliatone/go-authform/components/icons"
	"github.com/goliatone/go-authform/internal/metrics"
	"github.com/goliatone/go-authform/pkg/boundary"
	"github.com/goliatone/go-authform/pkg/form"
	"github.com/goliatone/go-authform/pkg/openapi"
	"github.com/goliatone/go-authform/pkg/pages"
	"github.com/goliatone/go-authform/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables counters and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithPages replaces the built-in page registry.
func WithPages(registry *pages.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.pages = registry
		}
	}
}

// WithRenderers sets the renderers negotiated per request. The registry's
// fallback renders requests whose Accept header matches nothing.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) {
		s.renderers = registry
	}
}

// WithTheme selects the default theme and variant. Requests may override
// them with the "theme" and "variant" query parameters.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(s *Server) {
		s.themes = selector
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithSubmitter sets where valid payloads go. Defaults to a LogSubmitter.
func WithSubmitter(submitter form.Submitter) Option {
	return func(s *Server) {
		s.submitter = submitter
	}
}

// WithDispatch overrides how submissions are scheduled.
func WithDispatch(dispatch func(func())) Option {
	return func(s *Server) {
		s.dispatch = dispatch
	}
}

// WithReporter replaces the boundary reporter. Defaults to a ZapReporter.
func WithReporter(reporter boundary.Reporter) Option {
	return func(s *Server) {
		s.reporter = reporter
	}
}

// WithIcons mounts the icon component.
func WithIcons(component *icons.Component) Option {
	return func(s *Server) {
		s.icons = component
	}
}

// WithRuntimeAssets serves files from assets under path.
func WithRuntimeAssets(assets fs.FS, path string) Option {
	return func(s *Server) {
		s.runtime = assets
		if path = strings.TrimSpace(path); path != "" {
			s.runtimePath = path
		}
	}
}

// WithOpenAPI serves doc at /openapi.json.
func WithOpenAPI(doc *openapi.Document) Option {
	return func(s *Server) {
		s.openapi = doc
	}
}

// WithRequestIDs overrides request id generation.
func WithRequestIDs(next func() string) Option {
	return func(s *Server) {
		if next != nil {
			s.newRequestID = next
		}
	}
}

// Server routes page, asset and operational endpoints.
type Server struct {
	router *mux.Router

	logger       *zap.Logger
	metrics      *metrics.Metrics
	pages        *pages.Registry
	renderers    *render.Registry
	themes       theme.ThemeSelector
	themeName    string
	themeVariant string
	submitter    form.Submitter
	dispatch     func(func())
	reporter     boundary.Reporter
	icons        *icons.Component
	runtime      fs.FS
	runtimePath  string
	openapi      *openapi.Document
	newRequestID func() string
}

// New wires the routes. A renderer registry is required.
func New(options ...Option) (*Server, error) {
	s := &Server{
		logger:       zap.NewNop(),
		pages:        pages.Default(),
		runtimePath:  "/runtime/",
		newRequestID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderers == nil || len(s.renderers.List()) == 0 {
		return nil, errors.New("server: at least one renderer is required")
	}
	if s.submitter == nil {
		s.submitter = form.NewLogSubmitter(s.logger)
	}
	if s.reporter == nil {
		s.reporter = boundary.NewZapReporter(s.logger)
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying router so callers can add routes.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) routes() error {
	r := mux.NewRouter()
	r.Use(s.requestID, s.observe)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	list := s.pages.All()
	if len(list) == 0 {
		return errors.New("server: no pages registered")
	}
	for _, page := range list {
		// Submissions are event handling, not rendering: only the view is
		// wrapped. POST re-renders get their own boundary in respond.
		mount := boundary.Middleware(s.boundaryOptions()...)
		r.Handle(page.Route, mount(s.viewPage(page))).Methods(http.MethodGet, http.MethodHead)
		r.Handle(page.Route, s.submitPage(page)).Methods(http.MethodPost)
	}

	home := list[0].Route
	if signIn, err := s.pages.Get(pages.SignIn().ID); err == nil {
		home = signIn.Route
	}
	r.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, home, http.StatusFound)
	}).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet, http.MethodHead)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	if s.openapi != nil {
		r.HandleFunc("/openapi.json", s.serveOpenAPI).Methods(http.MethodGet)
	}
	if s.icons != nil {
		r.PathPrefix(icons.MountPath("", icons.WithRoutePath(s.icons.Options().RoutePath))).Handler(s.icons.Handler())
	}
	if s.runtime != nil {
		prefix := "/" + strings.Trim(s.runtimePath, "/") + "/"
		r.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServerFS(s.runtime))).Methods(http.MethodGet, http.MethodHead)
	}

	s.router = r
	return nil
}

func (s *Server) boundaryOptions() []boundary.Option {
	return []boundary.Option{
		boundary.WithReporter(s.reporter),
		boundary.WithTripHook(func(_ error, info boundary.Info) {
			s.metrics.RenderFailure(info.Route)
		}),
	}
}

func (s *Server) serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(s.openapi)
	if err != nil {
		s.logger.Error("encode openapi document", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
