// Package server exposes the evaluation engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/flowqa/caseval/internal/engine"
)

const serviceName = "caseval evaluation service"

// Server wires the evaluation engine into HTTP handlers.
type Server struct {
	engine *engine.Engine
}

// New creates a Server around the given engine.
func New(e *engine.Engine) *Server {
	return &Server{engine: e}
}

// Register mounts the service routes on the router.
func (s *Server) Register(r *mux.Router) {
	r.HandleFunc("/api/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/metrics-info", s.handleMetricsInfo).Methods(http.MethodGet)
}

type evaluateRequest struct {
	TestCases []engine.TestCase `json:"testCases"`
	UserStory engine.UserStory  `json:"userStory"`
	Metrics   []string          `json:"metrics"`
	Provider  string            `json:"provider"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	// An omitted or empty metrics field gets the request-level default.
	// This is narrower than the engine's own all-metrics default for nil
	// kinds; both defaults are load-bearing.
	var kinds []engine.Kind
	if len(req.Metrics) == 0 {
		kinds = engine.DefaultRequestKinds()
	} else {
		var err error
		if kinds, err = engine.ParseKinds(req.Metrics); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := s.engine.EvaluateBatch(r.Context(), req.UserStory, req.TestCases, kinds, req.Provider)
	if err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Evaluation batch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
		"metrics": metricNames(),
	})
}

func (s *Server) handleMetricsInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"availableMetrics": engine.Catalogue(),
		"defaultMetrics":   engine.DefaultRequestKinds(),
	})
}

func metricNames() []string {
	kinds := engine.AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
