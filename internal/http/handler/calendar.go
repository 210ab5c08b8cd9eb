package handler

import (
	"net/http"
	"time"

	"github.com/rezkam/taskmaster/internal/http/response"
)

// Calendar handles GET /v1/calendar?month=YYYY-MM. Without the month
// parameter the current month is used. The grid covers the whole task
// collection, not the filtered view.
func (s *Server) Calendar(w http.ResponseWriter, r *http.Request) {
	coord, ok := s.coordinator(w, r)
	if !ok {
		return
	}

	now := time.Now()
	reference := now
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			response.BadRequest(w, "invalid month, want YYYY-MM")
			return
		}
		reference = parsed
	}

	response.OK(w, toMonthGridResponse(coord.MonthGrid(reference, now)))
}
