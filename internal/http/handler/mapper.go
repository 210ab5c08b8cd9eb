package handler

import (
	"time"

	"github.com/rezkam/taskmaster/internal/calendar"
	"github.com/rezkam/taskmaster/internal/domain"
)

type taskResponse struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	Category  string  `json:"category"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func toTaskResponse(t domain.Task) taskResponse {
	resp := taskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Category:  t.Category,
		StartTime: t.StartTime.Format(time.RFC3339Nano),
		CreatedAt: t.CreatedAt.Format(time.RFC3339Nano),
	}
	if t.EndTime != nil {
		end := t.EndTime.Format(time.RFC3339Nano)
		resp.EndTime = &end
	}
	return resp
}

func toTaskResponses(tasks []domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

type filterStateResponse struct {
	Search       string     `json:"search"`
	Category     *string    `json:"category"`
	Status       string     `json:"status"`
	DateRange    *dateRange `json:"dateRange,omitempty"`
	SelectedDate *string    `json:"selectedDate,omitempty"`
}

type dateRange struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
}

func toFilterStateResponse(f domain.FilterState) filterStateResponse {
	resp := filterStateResponse{
		Search:   f.Search,
		Category: f.Category,
		Status:   string(f.Status),
	}
	if f.DateRange.Start != nil || f.DateRange.End != nil {
		resp.DateRange = &dateRange{
			Start: formatTimePtr(f.DateRange.Start),
			End:   formatTimePtr(f.DateRange.End),
		}
	}
	resp.SelectedDate = formatTimePtr(f.SelectedDate)
	return resp
}

type monthGridResponse struct {
	Reference string         `json:"reference"`
	Weeks     []weekResponse `json:"weeks"`
}

type weekResponse []dayCellResponse

type dayCellResponse struct {
	Date     string         `json:"date"`
	Tasks    []taskResponse `json:"tasks"`
	InMonth  bool           `json:"inMonth"`
	Today    bool           `json:"today"`
	Selected bool           `json:"selected"`
}

func toMonthGridResponse(grid calendar.MonthGrid) monthGridResponse {
	resp := monthGridResponse{
		Reference: grid.Reference.Format("2006-01"),
		Weeks:     make([]weekResponse, 0, len(grid.Weeks)),
	}
	for _, week := range grid.Weeks {
		cells := make(weekResponse, 0, len(week))
		for _, cell := range week {
			cells = append(cells, dayCellResponse{
				Date:     cell.Date.Format("2006-01-02"),
				Tasks:    toTaskResponses(cell.Tasks),
				InMonth:  cell.InMonth,
				Today:    cell.Today,
				Selected: cell.Selected,
			})
		}
		resp.Weeks = append(resp.Weeks, cells)
	}
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}
