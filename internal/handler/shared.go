package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
	"github.com/rocjay1/superstore-analytics/internal/filter"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/report"
	"github.com/rocjay1/superstore-analytics/internal/session"
)

const (
	// SessionHeader carries the session id; the "session" query parameter is
	// accepted as well.
	SessionHeader = "X-Session-ID"

	// EmptyResultMessage is shown when the current filters match no rows.
	EmptyResultMessage = "No data matches your filters — please widen your selection."
)

// Dependencies holds the services required by the handlers.
type Dependencies struct {
	Sessions *session.Store
	// Blob is nil when blob storage is not configured.
	Blob            BlobClient
	ExportContainer string
	Now             func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session")
}

// requireSession resolves the request's session, writing an error response
// when it is absent or unknown.
func (d *Dependencies) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := sessionID(r)
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing session id")
		return nil, false
	}
	s, err := d.Sessions.Get(id)
	if err != nil {
		slog.Warn("unknown session", "session_id", id)
		WriteError(w, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

// filtered applies the session's selection, with any query overrides, to its
// table.
func (d *Dependencies) filtered(s *session.Session, q url.Values) (filter.View, models.Selection, error) {
	table, err := d.Sessions.Table(s)
	if err != nil {
		return filter.View{}, models.Selection{}, err
	}
	sel, err := selectionFromQuery(s.Selection(), q)
	if err != nil {
		return filter.View{}, models.Selection{}, err
	}
	view, err := filter.Apply(filter.All(table), sel)
	return view, sel, err
}

type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

// writePipelineError maps validation, filter and session errors to
// responses. It reports false when err is nil.
func writePipelineError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var missing *models.MissingRequiredColumnError
	var excluded *models.AllExcludedError
	var unavailable *models.FeatureUnavailableError
	var bad *badRequestError
	switch {
	case errors.As(err, &missing):
		WriteError(w, http.StatusUnprocessableEntity, missing.Error())
	case errors.As(err, &excluded):
		slog.Info("filter excludes every row", "field", excluded.Field)
		WriteError(w, http.StatusUnprocessableEntity, EmptyResultMessage)
	case errors.Is(err, models.ErrEmptyResult):
		WriteError(w, http.StatusUnprocessableEntity, EmptyResultMessage)
	case errors.As(err, &unavailable):
		WriteError(w, http.StatusConflict, report.Notice(unavailable))
	case errors.Is(err, session.ErrNoTable):
		WriteError(w, http.StatusConflict, "Upload a file first")
	case errors.Is(err, csvparse.ErrNoHeader), errors.As(err, &bad):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
	return true
}

var queryColumns = map[string]string{
	"region":   models.ColRegion,
	"category": models.ColCategory,
	"segment":  models.ColSegment,
	"shipMode": models.ColShipMode,
}

// selectionFromQuery overrides parts of base from query parameters:
// from/to (YYYY-MM-DD) and comma lists for region, category, segment and
// shipMode. A parameter given with an empty value deselects everything.
func selectionFromQuery(base models.Selection, q url.Values) (models.Selection, error) {
	sel := base.Clone()
	for param, column := range queryColumns {
		if !q.Has(param) {
			continue
		}
		sel = sel.With(column, splitList(q.Get(param)))
	}

	if !q.Has("from") && !q.Has("to") {
		return sel, nil
	}
	var start, end time.Time
	if sel.DateRange != nil {
		start, end = sel.DateRange.Start, sel.DateRange.End
	}
	for param, target := range map[string]*time.Time{"from": &start, "to": &end} {
		if v := q.Get(param); v != "" {
			t, err := time.Parse(models.DateLayout, v)
			if err != nil {
				return sel, &badRequestError{msg: "Invalid " + param + " date: " + v}
			}
			*target = t
		}
	}
	if start.IsZero() || end.IsZero() {
		return sel, &badRequestError{msg: "Both from and to dates are required"}
	}
	if end.Before(start) {
		return sel, &badRequestError{msg: "End date is before start date"}
	}
	dr := models.NewDateRange(start, end)
	sel.DateRange = &dr
	return sel, nil
}

func splitList(s string) []string {
	values := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
