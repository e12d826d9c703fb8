package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/handler"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/services"
	"github.com/rocjay1/superstore-analytics/internal/session"
	"github.com/shopspring/decimal"
)

const defaultExportContainer = "superstore-exports"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	mode := models.DefaultCurrencyMode()
	if raw := os.Getenv("DEFAULT_USD_RATE"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err == nil {
			err = mode.SetRate(rate)
		}
		if err != nil {
			slog.Error("Invalid DEFAULT_USD_RATE", "value", raw, "error", err)
			os.Exit(1)
		}
	}

	sessions := session.NewStore(session.NewCache(), mode)
	if raw := os.Getenv("SESSION_IDLE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("Invalid SESSION_IDLE_TTL", "value", raw, "error", err)
			os.Exit(1)
		}
		sessions.IdleTTL = ttl
	}

	deps := &handler.Dependencies{
		Sessions:        sessions,
		ExportContainer: os.Getenv("EXPORT_CONTAINER"),
	}
	if deps.ExportContainer == "" {
		deps.ExportContainer = defaultExportContainer
	}

	// Blob storage is optional; uploads still work through multipart forms.
	if url := os.Getenv("BLOB_SERVICE_URL"); url != "" {
		blobService, err := services.NewBlobService(url)
		if err != nil {
			slog.Error("Failed to init BlobService", "error", err)
			os.Exit(1)
		}
		deps.Blob = blobService
	} else {
		slog.Warn("BLOB_SERVICE_URL not set, blob upload and export disabled")
	}

	mux := deps.Routes()

	// Catch-all handler for unmatched requests to debug what the Host is sending
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		headers := make(map[string]string)
		for k, v := range r.Header {
			headers[k] = strings.Join(v, ", ")
		}
		slog.Warn("UNMATCHED REQUEST",
			"method", r.Method,
			"path", r.URL.Path,
			"headers", headers,
			"content_length", r.ContentLength,
		)
		http.NotFound(w, r)
	})

	port := os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("Starting server", "port", port, "usd_rate", mode.Rate.String(), "export_container", deps.ExportContainer, "session_idle_ttl", sessions.IdleTTL)
	if err := http.ListenAndServe(":"+port, loggingMiddleware(mux)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request without its body, which may hold a
// whole order export.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		slog.Info("incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_type", r.Header.Get("Content-Type"),
			"content_length", r.ContentLength,
		)

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		slog.Info("request completed", "method", r.Method, "path", r.URL.Path, "status", rw.status, "duration", time.Since(start))
	})
}
