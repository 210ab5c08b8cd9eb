package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/taskmaster/internal/application/task"
	"github.com/rezkam/taskmaster/internal/http/middleware"
	"github.com/rezkam/taskmaster/internal/http/response"
)

// maxSnapshotBytes caps the accepted import payload size.
const maxSnapshotBytes = 8 << 20

type importResponse struct {
	Imported int    `json:"imported"`
	Warning  string `json:"warning,omitempty"`
}

// ExportSnapshot handles GET /v1/snapshot. The payload carries no task ids
// or owner information, so it can be imported into any account.
func (s *Server) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	data, err := task.EncodeSnapshot(coord.ExportSnapshot())
	if err != nil {
		response.InternalError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="taskmaster-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ImportSnapshot handles POST /v1/snapshot. Import is best effort: records
// that fail to persist are skipped and reported in the warning field while
// the rest are imported.
func (s *Server) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		response.BadRequest(w, "failed to read request body")
		return
	}
	records, err := task.DecodeSnapshot(data)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	imported, err := coord.ImportSnapshot(r.Context(), records)
	resp := importResponse{Imported: imported}
	if err != nil {
		resp.Warning = err.Error()
	}
	response.OK(w, resp)
}

// ListArchives handles GET /v1/archives.
func (s *Server) ListArchives(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	names, err := s.archive.List(r.Context(), user.ID)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}
	response.OK(w, map[string][]string{"archives": names})
}

// CreateArchive handles POST /v1/archives. It stores the current export in
// the configured archive backend and returns the generated name.
func (s *Server) CreateArchive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	data, err := task.EncodeSnapshot(coord.ExportSnapshot())
	if err != nil {
		response.InternalError(w, r, err)
		return
	}
	name, err := s.archive.Save(r.Context(), user.ID, data)
	if err != nil {
		response.InternalError(w, r, err)
		return
	}
	response.Created(w, map[string]string{"name": name})
}

// RestoreArchive handles POST /v1/archives/{name}/restore. The archived
// snapshot is decoded and imported into the owner's collection.
func (s *Server) RestoreArchive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	data, err := s.archive.Load(r.Context(), user.ID, chi.URLParam(r, "name"))
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	records, err := task.DecodeSnapshot(data)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	imported, err := coord.ImportSnapshot(r.Context(), records)
	resp := importResponse{Imported: imported}
	if err != nil {
		resp.Warning = err.Error()
	}
	response.OK(w, resp)
}
