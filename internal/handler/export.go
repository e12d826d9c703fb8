package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
)

const csvContentType = "text/csv; charset=utf-8"

// ExportBlobRequest optionally names the exported blob.
type ExportBlobRequest struct {
	Blob string `json:"blob"`
}

// HandleExport streams the filtered rows as CSV with their original values,
// whatever the display currency.
func (d *Dependencies) HandleExport(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}
	view, _, err := d.filtered(s, r.URL.Query())
	if writePipelineError(w, err) {
		return
	}

	var buf bytes.Buffer
	if err := csvparse.WriteCSV(&buf, view.Table(), view.Indices()); err != nil {
		writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", csvContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvparse.ExportFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write export", "session_id", s.ID, "error", err)
	}
	slog.Info("exported filtered rows", "session_id", s.ID, "rows", view.Len())
}

// HandleExportBlob publishes the filtered rows to the export container.
func (d *Dependencies) HandleExportBlob(w http.ResponseWriter, r *http.Request) {
	if d.Blob == nil {
		WriteError(w, http.StatusServiceUnavailable, "Blob storage is not configured")
		return
	}
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}

	var req ExportBlobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Blob == "" {
		req.Blob = fmt.Sprintf("exports/%s-%s", d.now().Format("20060102-150405"), csvparse.ExportFilename)
	}

	view, _, err := d.filtered(s, r.URL.Query())
	if writePipelineError(w, err) {
		return
	}
	var buf bytes.Buffer
	if err := csvparse.WriteCSV(&buf, view.Table(), view.Indices()); err != nil {
		writePipelineError(w, err)
		return
	}

	if err := d.Blob.UploadBytes(r.Context(), d.ExportContainer, req.Blob, csvContentType, buf.Bytes()); err != nil {
		slog.Error("failed to publish export", "container", d.ExportContainer, "blob_name", req.Blob, "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to upload export")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"container": d.ExportContainer,
		"blobName":  req.Blob,
		"rows":      view.Len(),
	})
}
