package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rocjay1/superstore-analytics/internal/fixtures"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/rocjay1/superstore-analytics/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardBody struct {
	CurrencyLabel string                    `json:"currencyLabel"`
	Selection     models.Selection          `json:"selection"`
	Cards         []report.Card             `json:"cards"`
	Notices       []string                  `json:"notices"`
	Display       map[string][]DisplayValue `json:"display"`
	Metrics       struct {
		KPIs struct {
			TotalOrders int `json:"totalOrders"`
		} `json:"kpis"`
	} `json:"metrics"`
	Explorer struct {
		Rows int `json:"rows"`
	} `json:"explorer"`
}

func serve(deps *Dependencies, method, target, id string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if id != "" {
		req.Header.Set(SessionHeader, id)
	}
	w := httptest.NewRecorder()
	deps.Routes().ServeHTTP(w, req)
	return w
}

func dashboard(t *testing.T, deps *Dependencies, id, query string) dashboardBody {
	t.Helper()
	w := serve(deps, http.MethodGet, "/api/dashboard"+query, id, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body dashboardBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleDashboard(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	body := dashboard(t, deps, id, "")
	assert.Equal(t, "$ USD", body.CurrencyLabel)
	assert.Equal(t, 10, body.Metrics.KPIs.TotalOrders)
	assert.Equal(t, 10, body.Explorer.Rows)
	assert.Empty(t, body.Notices)
	require.Len(t, body.Cards, 6)
	assert.Equal(t, "$2.1K", body.Cards[0].Value)
	assert.Equal(t, "$700.00", body.Display["regions"][0].Value)
	assert.Len(t, body.Display["dayOfWeek"], 7)
}

func TestHandleDashboard_QueryOverride(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	body := dashboard(t, deps, id, "?region=East&from=2024-01-31&to=2024-02-12")
	assert.Equal(t, 3, body.Metrics.KPIs.TotalOrders)
	assert.Equal(t, "$350.00", body.Cards[0].Value)

	// The stored selection is untouched.
	assert.Equal(t, 10, dashboard(t, deps, id, "").Metrics.KPIs.TotalOrders)
}

func TestHandleDashboard_Notices(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Minimal)

	body := dashboard(t, deps, id, "")
	assert.Contains(t, body.Notices, "Column Profit not found in your data")
	assert.Contains(t, body.Notices, "Column Order Date not found in your data")
	assert.Equal(t, report.NotAvailable, body.Cards[1].Value)
	_, hasStates := body.Display["topStates"]
	assert.False(t, hasStates)
}

func TestHandleDashboard_EmptyResultKeepsSelection(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	w := serve(deps, http.MethodPut, "/api/selection", id, `{"categorical":{"Region":[]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(deps, http.MethodGet, "/api/dashboard", id, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, EmptyResultMessage, resp["error"])

	s, err := deps.Sessions.Get(id)
	require.NoError(t, err)
	sel := s.Selection()
	assert.Contains(t, sel.Categorical, models.ColRegion)
	assert.Empty(t, sel.Categorical[models.ColRegion])

	// Widening again recovers.
	body := dashboard(t, deps, id, "?region=East,West")
	assert.Equal(t, 10, body.Metrics.KPIs.TotalOrders)
}

func TestHandleDashboard_DateRangeWithNoRows(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)
	w := serve(deps, http.MethodGet, "/api/dashboard?from=2020-01-01&to=2020-12-31", id, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleDashboard_BadQuery(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	w := serve(deps, http.MethodGet, "/api/dashboard?from=31-01-2024", id, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(deps, http.MethodGet, "/api/dashboard?from=2024-02-01&to=2024-01-01", id, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDashboard_Sessions(t *testing.T) {
	deps := newDeps()

	w := serve(deps, http.MethodGet, "/api/dashboard", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(deps, http.MethodGet, "/api/dashboard", "missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	s := deps.Sessions.Create()
	w = serve(deps, http.MethodGet, "/api/dashboard?session="+s.ID, "", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandleSelection(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	w := serve(deps, http.MethodGet, "/api/selection", id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got SelectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{"Consumer", "Corporate", "Home Office"}, got.Options[models.ColSegment])
	require.NotNil(t, got.DateSpan)

	w = serve(deps, http.MethodPut, "/api/selection", id,
		`{"dateRange":{"start":"2024-02-01","end":"2024-02-29"},"categorical":{"Category":["Technology"]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	// Rows 4, 6 and 10.
	body := dashboard(t, deps, id, "")
	assert.Equal(t, 3, body.Metrics.KPIs.TotalOrders)

	w = serve(deps, http.MethodPut, "/api/selection", id, `{"dateRange":{"start":"2024-03-01","end":"2024-02-01"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCurrency(t *testing.T) {
	deps := newDeps()
	id := upload(t, deps, fixtures.Orders)

	w := serve(deps, http.MethodPut, "/api/currency", id, `{"local":true,"rate":83.5}`)
	require.Equal(t, http.StatusOK, w.Code)
	var mode CurrencyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mode))
	assert.True(t, mode.Local)
	assert.Equal(t, "₹", mode.Symbol)

	body := dashboard(t, deps, id, "")
	assert.Equal(t, "₹ INR", body.CurrencyLabel)
	assert.Equal(t, "₹1.75 L", body.Cards[0].Value)

	// A new rate applies to the next call without re-uploading.
	w = serve(deps, http.MethodPut, "/api/currency", id, `{"local":true,"rate":100}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "₹2.10 L", dashboard(t, deps, id, "").Cards[0].Value)

	w = serve(deps, http.MethodPut, "/api/currency", id, `{"local":true,"rate":151}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = serve(deps, http.MethodPut, "/api/currency", id, `{"local":true,"rate":49.9}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Omitting the rate keeps it.
	w = serve(deps, http.MethodPut, "/api/currency", id, `{"local":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&mode))
	assert.False(t, mode.Local)
	assert.Equal(t, "100", mode.Rate.String())
}
