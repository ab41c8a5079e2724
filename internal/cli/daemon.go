package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lherron/remerge/internal/agent"
	"github.com/lherron/remerge/internal/config"
	"github.com/lherron/remerge/internal/merge"
	"github.com/lherron/remerge/internal/resolve"
)

// DaemonOptions configures the remerged daemon.
type DaemonOptions struct {
	Addr      string
	Unix      string
	Token     string
	Workspace string
	Backend   string
}

// ServeDaemon starts the remerged daemon.
func ServeDaemon(opts DaemonOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Workspace != "" {
		cfg.WorkspaceRoot = opts.Workspace
	}
	if opts.Backend != "" {
		cfg.MergeBackend = opts.Backend
	}

	server := &daemonServer{
		cfg:   cfg,
		token: opts.Token,
	}

	mux := http.NewServeMux()
	server.registerRoutes(mux)

	httpServer := &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if opts.Unix != "" {
		_ = os.Remove(opts.Unix)
		listener, err := net.Listen("unix", opts.Unix)
		if err != nil {
			return fmt.Errorf("failed to listen on unix socket: %w", err)
		}
		defer listener.Close()
		return httpServer.Serve(listener)
	}

	addr := opts.Addr
	if addr == "" {
		addr = "127.0.0.1:7272"
	}
	httpServer.Addr = addr

	return httpServer.ListenAndServe()
}

type daemonServer struct {
	cfg   *config.Config
	token string
}

func (s *daemonServer) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/health", s.withAuth(s.handleHealth))
	mux.HandleFunc("/v1/resolve", s.withAuth(s.handleResolve))
}

func (s *daemonServer) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			token := r.Header.Get("Authorization")
			if strings.HasPrefix(token, "Bearer ") {
				token = strings.TrimPrefix(token, "Bearer ")
			}
			if token == "" {
				token = r.Header.Get("X-Remerged-Token")
			}
			if token != s.token {
				s.writeError(w, http.StatusUnauthorized, "unauthorized", fmt.Errorf("unauthorized"))
				return
			}
		}

		next(w, r)
	}
}

func (s *daemonServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"backend": s.cfg.MergeBackend,
	})
}

func (s *daemonServer) handleResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", fmt.Errorf("use POST"))
		return
	}

	body, err := readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", err)
		return
	}

	req, err := resolve.ParseRequest(body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_input", err)
		return
	}

	requestID := uuid.NewString()
	resolver := resolve.New(s.newAgent(), merge.New(s.cfg.MergeBackend))

	content, err := resolver.Resolve(r.Context(), req)
	if err != nil {
		code, status := classifyError(err)
		log.Printf("remerged: resolve %s failed (%s): %v", requestID, code, err)
		s.writeError(w, status, code, err)
		return
	}

	log.Printf("remerged: resolve %s ok (%d bytes)", requestID, len(content))
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"request_id": requestID,
		"content":    content,
	})
}

func (s *daemonServer) newAgent() agent.Agent {
	if a := agent.Default(); a != nil {
		return a
	}
	return &agent.Deferred{Override: s.cfg.WorkspaceRoot, Command: s.cfg.AgentCommand}
}

// classifyError maps a resolution failure to a wire code and HTTP status.
func classifyError(err error) (string, int) {
	switch {
	case errors.Is(err, resolve.ErrInvalidInput):
		return "invalid_input", http.StatusBadRequest
	case errors.Is(err, resolve.ErrMissingContent):
		return "missing_content", http.StatusBadRequest
	case errors.Is(err, resolve.ErrWorkspaceNotFound):
		return "workspace_not_found", http.StatusConflict
	case errors.Is(err, resolve.ErrAgentUnavailable):
		return "agent_unavailable", http.StatusConflict
	case errors.Is(err, resolve.ErrEmptyResolution):
		return "empty_resolution", http.StatusConflict
	}
	return "internal", http.StatusInternalServerError
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

func (s *daemonServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *daemonServer) writeError(w http.ResponseWriter, status int, code string, err error) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": err.Error(),
	})
}
