package handler

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/rocjay1/superstore-analytics/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleChart(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	w := serve(deps, http.MethodGet, "/api/charts/regions.png", id, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = serve(deps, http.MethodGet, "/api/charts/pie.png", id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(deps, http.MethodGet, "/api/charts/regions", id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleChart_FeatureUnavailable(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Minimal)

	w := serve(deps, http.MethodGet, "/api/charts/monthly.png", id, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Column Order Date not found in your data")
}
