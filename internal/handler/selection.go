package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
)

// SelectionResponse is the current selection and the values it can take.
type SelectionResponse struct {
	Selection models.Selection    `json:"selection"`
	Options   map[string][]string `json:"options"`
	DateSpan  *models.DateRange   `json:"dateSpan,omitempty"`
}

// HandleGetSelection returns the session's selection with the distinct
// values of every filter column.
func (d *Dependencies) HandleGetSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}
	table, err := d.Sessions.Table(s)
	if writePipelineError(w, err) {
		return
	}

	all := filter.All(table)
	options := make(map[string][]string)
	for _, column := range models.FilterColumns {
		if table.HasColumn(column) {
			options[column] = filter.DistinctValues(all, column)
		}
	}
	span, _ := filter.DateSpan(all)

	WriteJSON(w, http.StatusOK, SelectionResponse{Selection: s.Selection(), Options: options, DateSpan: span})
}

// HandleSetSelection replaces the session's selection. The selection is
// stored even when it matches no rows so the user can widen it later.
func (d *Dependencies) HandleSetSelection(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}

	var sel models.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		slog.Warn("invalid selection", "session_id", s.ID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid selection: "+err.Error())
		return
	}

	s.SetSelection(sel)
	slog.Info("selection updated", "session_id", s.ID, "date_filter", sel.DateRange != nil, "categorical_filters", len(sel.Categorical))
	WriteJSON(w, http.StatusOK, s.Selection())
}
