package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/question"
	"github.com/abhisek/skillpath/internal/quiz"
)

const maxBodyBytes = 1 << 20

type submitRequest struct {
	Answers map[string]string `json:"answers"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	dto, err := s.quizzes.Generate(r.Context(), chi.URLParam(r, "roadmapID"), chi.URLParam(r, "itemID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("request body is empty")
		}
		s.writeError(w, r, &question.ValidationError{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	res, err := s.quizzes.Submit(r.Context(), chi.URLParam(r, "roadmapID"), chi.URLParam(r, "itemID"), req.Answers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			writeErrorBody(w, http.StatusServiceUnavailable, "unavailable", "database unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps engine errors to status codes. Details of server-side
// failures are logged, never returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound  *quiz.NotFoundError
		invalid   *quiz.InvalidOperationError
		malformed *quiz.MalformedOutputError
		genErr    *quiz.GenerationError
		verr      *question.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", notFound.Message)
	case errors.As(err, &invalid):
		writeErrorBody(w, http.StatusBadRequest, "invalid_operation", invalid.Message)
	// Checked before ValidationError: a rejected draft wraps one.
	case errors.As(err, &malformed), errors.As(err, &genErr):
		s.logFailure(r, "question generation failed", err)
		writeErrorBody(w, http.StatusInternalServerError, "generation_failed", "could not generate quiz questions")
	case errors.As(err, &verr):
		writeErrorBody(w, http.StatusBadRequest, "validation_error", verr.Error())
	default:
		s.logFailure(r, "request failed", err)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) logFailure(r *http.Request, msg string, err error) {
	s.log.Error(msg,
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err))
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
