package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocjay1/superstore-analytics/internal/currency"
	"github.com/rocjay1/superstore-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// CurrencyRequest toggles local currency display. Rate is optional and
// keeps its current value when omitted.
type CurrencyRequest struct {
	Local bool             `json:"local"`
	Rate  *decimal.Decimal `json:"rate,omitempty"`
}

// CurrencyResponse echoes the mode now in force.
type CurrencyResponse struct {
	models.CurrencyMode
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

// HandleCurrency updates the session's currency mode.
func (d *Dependencies) HandleCurrency(w http.ResponseWriter, r *http.Request) {
	s, ok := d.requireSession(w, r)
	if !ok {
		return
	}

	var req CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rate := s.CurrencyMode().Rate
	if req.Rate != nil {
		rate = *req.Rate
	}
	if err := s.SetCurrency(req.Local, rate); err != nil {
		if errors.Is(err, models.ErrRateOutOfRange) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writePipelineError(w, err)
		return
	}

	f := currency.New(s)
	WriteJSON(w, http.StatusOK, CurrencyResponse{CurrencyMode: s.CurrencyMode(), Label: f.Label(), Symbol: f.Symbol()})
}
