package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/rocjay1/superstore-analytics/internal/csvparse"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/session"
)

// UploadResponse describes a loaded file.
type UploadResponse struct {
	SessionID    string            `json:"sessionId"`
	Rows         int               `json:"rows"`
	Columns      []models.Column   `json:"columns"`
	Capabilities models.Capability `json:"capabilities"`
	Missing      []string          `json:"missingColumns"`
	Skipped      []string          `json:"skippedRows"`
	Selection    models.Selection  `json:"selection"`
}

// BlobUploadRequest names a blob holding an order export.
type BlobUploadRequest struct {
	Container string `json:"container"`
	Blob      string `json:"blob"`
}

// HandleUpload loads a CSV sent as the multipart field "file".
func (d *Dependencies) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("upload attempt with invalid method", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// 10MB limit
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "max_size_mb", 10)
		WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Warn("failed to get file from form", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to get file")
		return
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	slog.Info("received file upload", "filename", header.Filename, "size_bytes", len(bytes))

	d.ingest(w, r, string(bytes))
}

// HandleBlobUpload loads a CSV stored in blob storage.
func (d *Dependencies) HandleBlobUpload(w http.ResponseWriter, r *http.Request) {
	if d.Blob == nil {
		WriteError(w, http.StatusServiceUnavailable, "Blob storage is not configured")
		return
	}

	var req BlobUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Container == "" || req.Blob == "" {
		WriteError(w, http.StatusBadRequest, "container and blob are required")
		return
	}

	content, err := d.Blob.DownloadText(r.Context(), req.Container, req.Blob)
	if err != nil {
		slog.Error("failed to download dataset", "container", req.Container, "blob_name", req.Blob, "error", err)
		WriteError(w, http.StatusBadGateway, "Failed to download blob")
		return
	}
	d.ingest(w, r, content)
}

// ingest parses content and attaches it to the request's session, creating
// one when the request names none.
func (d *Dependencies) ingest(w http.ResponseWriter, r *http.Request, content string) {
	var s *session.Session
	if sessionID(r) != "" {
		var ok bool
		if s, ok = d.requireSession(w, r); !ok {
			return
		}
	}

	table, key, skipped, err := d.Sessions.Cache.Load(content)
	if err != nil {
		var missing *models.MissingRequiredColumnError
		if errors.As(err, &missing) {
			slog.Warn("upload rejected", "missing_column", missing.Field)
			writePipelineError(w, err)
			return
		}
		if !errors.Is(err, csvparse.ErrNoHeader) {
			err = &badRequestError{msg: err.Error()}
		}
		writePipelineError(w, err)
		return
	}

	if s == nil {
		s = d.Sessions.Create()
	}
	d.Sessions.Attach(s, key, table)

	if len(skipped) > 0 {
		slog.Warn("skipped invalid rows", "session_id", s.ID, "count", len(skipped))
	}

	w.Header().Set(SessionHeader, s.ID)
	WriteJSON(w, http.StatusOK, UploadResponse{
		SessionID:    s.ID,
		Rows:         len(table.Rows),
		Columns:      table.Columns,
		Capabilities: table.Caps,
		Missing:      table.Caps.Missing(),
		Skipped:      skipped,
		Selection:    s.Selection(),
	})
}
