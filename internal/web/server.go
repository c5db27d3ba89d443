package web

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"lectern/internal/auth"
	"lectern/internal/lectures"
	"lectern/internal/ports"
	"lectern/internal/shared/middleware"
)

// Server serves the lecture pages and the HTMX API.
type Server struct {
	router   chi.Router
	port     int
	store    *lectures.Store
	audio    ports.AudioStorage // nil when no bucket is configured
	verifier ports.TokenVerifier
	pages    pages
	logger   *slog.Logger
}

type Deps struct {
	Port     int
	Store    *lectures.Store
	Audio    ports.AudioStorage
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

func NewServer(deps Deps) (*Server, error) {
	tmpl, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:   chi.NewRouter(),
		port:     deps.Port,
		store:    deps.Store,
		audio:    deps.Audio,
		verifier: deps.Verifier,
		pages:    tmpl,
		logger:   logger,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.HTMX)
	r.Use(auth.Middleware(s.verifier))

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/lectures", http.StatusFound)
	})
	r.Get("/lectures", s.handleLectures)
	r.Get("/lectures/{id}", s.handleLectureDetail)
	r.Get("/lectures/{id}/status", s.handleLectureStatus)
	r.Get("/lectures/{id}/audio", s.handleLectureAudio)
	r.Get("/record", s.handleRecord)
	r.Get("/settings", s.handleSettings)

	// Locale toggle
	r.Post("/lang", s.handleLangToggle)

	// API endpoints (for HTMX)
	r.Post("/api/lectures", s.handleAPICreateLecture)
	r.Patch("/api/lectures/{id}", s.handleAPIUpdateLecture)
	r.Delete("/api/lectures/{id}", s.handleAPIDeleteLecture)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", "error", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
