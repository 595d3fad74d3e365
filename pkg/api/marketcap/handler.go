// Package marketcap exposes the market capitalization lookup endpoint.
package marketcap

import (
	"encoding/json"
	"net/http"
	"strings"

	"earnings_navi/pkg/core/quote"
	"earnings_navi/pkg/models"
)

type Handler struct {
	quotes *quote.Client
}

func NewHandler(quotes *quote.Client) *Handler {
	return &Handler{quotes: quotes}
}

// HandleMarketCap answers GET /api/market-cap/<code>.
func (h *Handler) HandleMarketCap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/api/market-cap/")
	if !models.ValidStockCode(code) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "無効な証券コードです"})
		return
	}

	info, err := h.quotes.FetchMarketCap(r.Context(), code)
	if err != nil || info == nil {
		// A provider miss and a provider failure look the same to the
		// frontend: no figure available.
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "時価総額情報を取得できませんでした"})
		return
	}

	json.NewEncoder(w).Encode(info)
}
