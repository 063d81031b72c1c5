// Package server is the thin HTTP transport over the completion engine.
// It exposes a single query endpoint and a health check; all ranking logic
// lives below it in pkg/suggest and pkg/trie.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/replyserve/internal/logger"
	"github.com/bastiangx/replyserve/pkg/config"
	"github.com/bastiangx/replyserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// CompletionResponse is the overall API response format.
type CompletionResponse struct {
	Completions []string `json:"completions"`
	Count       int      `json:"count"`
	Prefix      string   `json:"prefix"`
	TimeTaken   int64    `json:"time_ms"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Server handles HTTP completion requests against a loaded model.
type Server struct {
	completer *suggest.Completer
	cfg       config.ServerConfig
	log       *log.Logger
}

// NewServer creates a completion server around an immutable completer.
func NewServer(completer *suggest.Completer, cfg config.ServerConfig) *Server {
	return &Server{
		completer: completer,
		cfg:       cfg,
		log:       logger.New("http"),
	}
}

// Handler returns the route table. Split out from Start so tests can drive
// it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/autocomplete", s.handleAutocomplete)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start runs the server until ctx is cancelled, then shuts down draining
// in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Listening on %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleAutocomplete serves GET /autocomplete?q=<prefix>[&limit=n]. The q
// value arrives URL-decoded from the router and is matched lowercase. An
// indexed prefix with no candidates and an unknown prefix both yield an
// empty completions array, not an error.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	values := r.URL.Query()
	if !values.Has("q") {
		s.sendError(w, "Missing 'q' parameter", http.StatusBadRequest)
		return
	}
	prefix := values.Get("q")
	if len(prefix) > s.cfg.MaxPrefix {
		s.sendError(w, "Prefix exceeds maximum length of "+strconv.Itoa(s.cfg.MaxPrefix)+" characters", http.StatusBadRequest)
		s.log.Debug("Prefix too long in request")
		return
	}

	limit := s.cfg.DefaultLimit
	if raw := values.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.sendError(w, "Invalid 'limit' parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	start := time.Now()
	completions := s.completer.Phrases(prefix, limit)
	elapsed := time.Since(start)

	s.log.Debugf("Took [ %v ] for prefix '%s'", elapsed, prefix)

	s.sendJSON(w, http.StatusOK, CompletionResponse{
		Completions: completions,
		Count:       len(completions),
		Prefix:      prefix,
		TimeTaken:   elapsed.Milliseconds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.log.Errorf("Marshaling response: %v", err)
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, code int) {
	s.sendJSON(w, code, ErrorResponse{Error: message, Status: code})
}
