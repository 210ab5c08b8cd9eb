package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskmaster/internal/http/response"
)

type taskRequest struct {
	Text      string  `json:"text"`
	Category  string  `json:"category"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
}

func (req taskRequest) times() (time.Time, *time.Time, error) {
	start, err := parseFlexibleTime(req.StartTime)
	if err != nil {
		return time.Time{}, nil, err
	}
	end, err := parseTimePtr(req.EndTime)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, end, nil
}

// ListTasks handles GET /v1/tasks. Without query parameters it returns the
// view filtered by the owner's stored filter state; with any filter
// parameter present it applies an ad-hoc filter instead, leaving the stored
// state untouched.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	if len(query) == 0 {
		response.OK(w, toTaskResponses(coord.FilteredTasks()))
		return
	}

	state, err := parseFilterQuery(query)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	response.OK(w, toTaskResponses(coord.TasksMatching(state)))
}

// CreateTask handles POST /v1/tasks.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if req.StartTime == "" {
		response.BadRequest(w, "startTime is required")
		return
	}
	start, end, err := req.times()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	created, err := coord.Add(r.Context(), req.Text, req.Category, start, end)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, toTaskResponse(created))
}

// UpdateTask handles PATCH /v1/tasks/{id}. All mutable fields are replaced
// together; omitting endTime clears any previous end time.
func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if req.StartTime == "" {
		response.BadRequest(w, "startTime is required")
		return
	}
	start, end, err := req.times()
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if err := coord.Edit(r.Context(), id, req.Text, req.Category, start, end); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// ToggleTask handles POST /v1/tasks/{id}/toggle.
func (s *Server) ToggleTask(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	if err := coord.ToggleCompletion(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	if err := coord.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}
