package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/metrics"
	"github.com/rocjay1/superstore-analytics/internal/report"
)

// HandleChart renders /api/charts/{name}.png for the filtered view.
func (d *Dependencies) HandleChart(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}
	name, isPNG := strings.CutSuffix(r.PathValue("name"), ".png")
	if !isPNG {
		WriteError(w, http.StatusNotFound, "Unknown chart")
		return
	}

	view, _, err := d.filtered(s, r.URL.Query())
	if writePipelineError(w, err) {
		return
	}

	var buf bytes.Buffer
	err = report.RenderChart(&buf, name, metrics.Compute(view), currency.New(s))
	if errors.Is(err, report.ErrUnknownChart) {
		WriteError(w, http.StatusNotFound, "Unknown chart: "+name)
		return
	}
	if writePipelineError(w, err) {
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write chart", "chart", name, "error", err)
	}
}
