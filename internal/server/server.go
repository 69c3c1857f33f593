// Package server serves live views to a browser.
//
// Each page load creates a view on the server. The page receives frames as
// server-sent events and posts pointer events back, so the simulation,
// drag handling and tooltip fades all run server side:
//
//	GET    /                     live page
//	GET    /healthz              load and view counters
//	POST   /views                create a view, returns {"id": ...}
//	GET    /views/{id}/frame.svg current frame
//	GET    /views/{id}/layout.json
//	GET    /views/{id}/events    frames as server-sent events
//	POST   /views/{id}/pointer   apply a pointer event
//	DELETE /views/{id}           tear the view down
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/netgraph/pkg/observability"
	"github.com/matzehuels/netgraph/pkg/view"
)

// Options configures a Server.
type Options struct {
	Loader view.Loader
	View   view.Options

	// Nodes and Edges are the resources every view loads.
	Nodes string
	Edges string

	// AllowSources lets a create request name its own resources. The
	// server then fetches whatever file or URL a client asks for.
	AllowSources bool

	Title    string
	Logger   *log.Logger
	Counters *observability.Counters
}

// Server owns every live view it created.
type Server struct {
	opts   Options
	logger *log.Logger
	router chi.Router

	// ctx bounds every view; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	views map[string]*view.View
}

// New creates a Server. Views it opens live until deleted or until Close.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Counters == nil {
		opts.Counters = observability.NewCounters()
	}
	if opts.View.Logger == nil {
		opts.View.Logger = opts.Logger
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:   opts,
		logger: opts.Logger,
		ctx:    ctx,
		cancel: cancel,
		views:  make(map[string]*view.View),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/healthz", s.handleHealth)

	r.Route("/views", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/frame.svg", s.handleFrame)
			r.Get("/layout.json", s.handleLayout)
			r.Get("/events", s.handleEvents)
			r.Post("/pointer", s.handlePointer)
			r.Delete("/", s.handleDelete)
		})
	})
	return r
}

// Open creates and registers a view.
func (s *Server) Open(nodes, edges string) *view.View {
	if nodes == "" {
		nodes = s.opts.Nodes
	}
	if edges == "" {
		edges = s.opts.Edges
	}
	v := view.Open(s.ctx, s.opts.Loader, nodes, edges, s.opts.View)

	s.mu.Lock()
	s.views[v.ID()] = v
	n := len(s.views)
	s.mu.Unlock()

	s.logger.Debug("View opened", "view", v.ID(), "nodes", nodes, "edges", edges, "open", n)
	return v
}

// Lookup returns a registered view.
func (s *Server) Lookup(id string) (*view.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[id]
	return v, ok
}

// Remove unregisters and closes a view. It reports whether the view existed.
func (s *Server) Remove(id string) bool {
	s.mu.Lock()
	v, ok := s.views[id]
	delete(s.views, id)
	s.mu.Unlock()
	if ok {
		v.Close()
	}
	return ok
}

// Len returns the number of open views.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Close tears down every view.
func (s *Server) Close() {
	s.cancel()
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*view.View)
	s.mu.Unlock()
	for _, v := range views {
		v.Close()
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down and
// closes every view.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("Serving", "addr", addr)
	select {
	case err := <-errc:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// Event streams end when their views close, so close views first.
	s.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
