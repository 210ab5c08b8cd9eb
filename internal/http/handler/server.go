// Package handler implements the HTTP API handlers. Handlers translate
// between JSON requests and the application services; all task operations
// run against the per-owner coordinator resolved from the request user.
package handler

import (
	"net/http"

	"github.com/rezkam/taskmaster/internal/application/auth"
	"github.com/rezkam/taskmaster/internal/application/task"
	"github.com/rezkam/taskmaster/internal/http/middleware"
	"github.com/rezkam/taskmaster/internal/http/response"
	"github.com/rezkam/taskmaster/internal/storage/archive"
)

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	authenticator *auth.Authenticator
	registry      *task.Registry
	archive       archive.Archive
}

// NewServer creates a Server with the given application services.
func NewServer(authenticator *auth.Authenticator, registry *task.Registry, ar archive.Archive) *Server {
	return &Server{
		authenticator: authenticator,
		registry:      registry,
		archive:       ar,
	}
}

// coordinator resolves the authenticated user's task coordinator. It writes
// the error response itself and returns ok=false when the request cannot
// proceed.
func (s *Server) coordinator(w http.ResponseWriter, r *http.Request) (*task.Coordinator, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return nil, false
	}

	coord, err := s.registry.Get(r.Context(), user.ID)
	if err != nil {
		response.InternalError(w, r, err)
		return nil, false
	}
	return coord, true
}
