package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/permitsearch"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// DefaultShutdownTimeout bounds how long Run waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// Server serves the lookup page and JSON API.
type Server struct {
	registry *permitsearch.Registry
	resolver permitsearch.Resolver
	sessions *SessionStore
	limiter  *ClientLimiter
	logger   *slog.Logger

	trustProxy bool

	addr   string
	ln     net.Listener
	server *http.Server
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address. Defaults to ":8080".
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithResolver sets the resolver used for lookups, e.g. a logging decorator.
// Defaults to the registry itself.
func WithResolver(r permitsearch.Resolver) Option {
	return func(s *Server) {
		s.resolver = r
	}
}

// WithLogger sets the request and error logger. Defaults to discarding logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit limits each client to rps requests per second with burst.
// Rate limiting is off unless this option is given with rps > 0.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = NewClientLimiter(rps, burst)
		}
	}
}

// WithTrustProxy makes the server take the client address from
// X-Forwarded-For and X-Real-IP. Only enable it behind a proxy that sets
// those headers.
func WithTrustProxy(trust bool) Option {
	return func(s *Server) {
		s.trustProxy = trust
	}
}

// WithSessionTTL sets how long idle sessions are kept. A ttl of zero or less
// keeps DefaultSessionTTL.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.sessions = NewSessionStore(ttl)
	}
}

// NewServer creates a Server for the registry.
func NewServer(reg *permitsearch.Registry, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		resolver: reg,
		sessions: NewSessionStore(DefaultSessionTTL),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		addr:     ":8080",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Sessions returns the server's session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if s.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	if s.limiter != nil {
		r.Use(s.limiter.Middleware)
	}

	r.Get("/healthz", handleHealthz)

	r.Get("/", s.handleIndex)
	r.Post("/state", s.handleSelectState)
	r.Post("/lookup", s.handleLookup)
	r.Post("/property", s.handlePropertySearch)

	r.Route("/api", func(r chi.Router) {
		r.Get("/states", s.handleAPIStates)
		r.Get("/lookup", s.handleAPILookup)
		r.Get("/search", s.handleAPISearch)
		r.Get("/registry", s.handleAPIRegistry)
	})
	return r
}

// Listen opens the listener. Run calls it if it has not been called.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.ln = ln
	return nil
}

// Addr returns the listener's address, or the configured address before Listen.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Run serves requests until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", "addr", s.Addr())
		if err := s.server.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
