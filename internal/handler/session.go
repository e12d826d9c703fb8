package handler

import (
	"log/slog"
	"net/http"
)

// HandleDeleteSession ends the request's session and frees its table when no
// other session uses it.
func (d *Dependencies) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing session id")
		return
	}
	if err := d.Sessions.Delete(id); err != nil {
		slog.Warn("unknown session", "session_id", id)
		WriteError(w, http.StatusNotFound, "Session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
