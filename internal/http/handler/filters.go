package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rezkam/taskmaster/internal/http/response"
)

// GetFilters handles GET /v1/filters.
func (s *Server) GetFilters(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}
	response.OK(w, toFilterStateResponse(coord.FilterState()))
}

// PutFilters handles PUT /v1/filters. The stored filter state is replaced
// wholesale; fields absent from the body revert to their defaults.
func (s *Server) PutFilters(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	var req filterStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	state, err := req.toDomain()
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	coord.SetFilterState(state)
	response.OK(w, toFilterStateResponse(coord.FilterState()))
}

// ResetFilters handles DELETE /v1/filters.
func (s *Server) ResetFilters(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}
	coord.ResetFilters()
	response.OK(w, toFilterStateResponse(coord.FilterState()))
}
