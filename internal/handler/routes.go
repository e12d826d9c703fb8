package handler

import "net/http"

// Routes registers every API endpoint on a new ServeMux.
func (d *Dependencies) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/upload", d.HandleUpload)
	mux.HandleFunc("POST /api/upload/blob", d.HandleBlobUpload)

	mux.HandleFunc("GET /api/dashboard", d.HandleDashboard)
	mux.HandleFunc("GET /api/selection", d.HandleGetSelection)
	mux.HandleFunc("PUT /api/selection", d.HandleSetSelection)
	mux.HandleFunc("PUT /api/currency", d.HandleCurrency)
	mux.HandleFunc("DELETE /api/session", d.HandleDeleteSession)

	mux.HandleFunc("GET /api/export", d.HandleExport)
	mux.HandleFunc("POST /api/export/blob", d.HandleExportBlob)

	mux.HandleFunc("GET /api/charts/{name}", d.HandleChart)

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Azure Functions host invocations are unwrapped and routed back here.
	mux.HandleFunc("/HttpTrigger", d.HandleHTTPTrigger(mux))
	return mux
}
