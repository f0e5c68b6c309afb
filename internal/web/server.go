// Package web exposes forms and comparison pairs over HTTP. Every endpoint
// is fragment-in, fragment-out: requests carry the full form state and
// responses are markup swapped into the page, so the server keeps no
// per-session state.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/schemaform/internal/compare"
	"github.com/sells-group/schemaform/internal/form"
)

// Server serves a fixed set of forms and pairs. Registries are populated
// before Start and read-only afterwards, so handlers need no locking.
type Server struct {
	forms map[string]*form.Form
	pairs map[string]*compare.Pair
}

// NewServer builds an empty server.
func NewServer() *Server {
	return &Server{
		forms: map[string]*form.Form{},
		pairs: map[string]*compare.Pair{},
	}
}

// RegisterForm adds a form under its namespace. Call before Start.
func (s *Server) RegisterForm(f *form.Form) error {
	if _, ok := s.forms[f.Name]; ok {
		return eris.Errorf("web: form %q already registered", f.Name)
	}
	s.forms[f.Name] = f
	return nil
}

// RegisterPair adds a comparison pair and both of its side forms. Call
// before Start.
func (s *Server) RegisterPair(p *compare.Pair) error {
	if _, ok := s.pairs[p.Name]; ok {
		return eris.Errorf("web: pair %q already registered", p.Name)
	}
	s.pairs[p.Name] = p
	for _, f := range []*form.Form{p.Left, p.Right} {
		if err := s.RegisterForm(f); err != nil {
			return err
		}
	}
	return nil
}

// Router assembles the route tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/form/{name}", func(r chi.Router) {
		r.Get("/", s.handleFormPage)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/reset", s.handleReset)
		r.Post("/validate", s.handleValidate)
		r.Post("/list/add/*", s.handleListAdd)
		r.Delete("/list/delete/*", s.handleListDelete)
	})

	r.Route("/compare/{pair}", func(r chi.Router) {
		r.Get("/", s.handleComparePage)
		r.Post("/copy", s.handleCopy)
		r.Post("/{side}/refresh", s.handleSideRefresh)
		r.Post("/{side}/reset", s.handleSideReset)
	})

	return r
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "web: server listen")
	}
	return nil
}

// requestLogger logs each request with timing at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
