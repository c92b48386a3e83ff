// Package server exposes the quiz engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/quiz"
)

// QuizService is the engine surface the API needs. *quiz.Engine satisfies it.
type QuizService interface {
	Generate(ctx context.Context, roadmapID, itemID string) (*quiz.QuizDTO, error)
	Submit(ctx context.Context, roadmapID, itemID string, answers map[string]string) (*quiz.GradeResult, error)
}

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config controls the HTTP layer.
type Config struct {
	AllowedOrigins []string
	RequestTimeout time.Duration

	// JWTSecret turns on HS256 bearer auth for /api routes.
	JWTSecret string
}

// Server routes requests to the quiz engine.
type Server struct {
	quizzes QuizService
	health  Pinger
	cfg     Config
	log     *zap.Logger
	router  chi.Router
}

func New(quizzes QuizService, health Pinger, cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{quizzes: quizzes, health: health, cfg: cfg, log: log}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/roadmaps/{roadmapID}/items/{itemID}/quiz", func(r chi.Router) {
		if s.cfg.JWTSecret != "" {
			r.Use(authMiddleware([]byte(s.cfg.JWTSecret)))
		}
		r.Post("/", s.handleGenerate)
		r.Post("/submit", s.handleSubmit)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "not_found", "route not found")
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
