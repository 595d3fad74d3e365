// Package earnings exposes the earnings-materials discovery endpoint.
package earnings

import (
	"encoding/json"
	"net/http"
	"strings"

	"earnings_navi/pkg/core/discovery"
	"earnings_navi/pkg/models"
)

// The discovery window requested on behalf of the frontend.
const defaultYears = 5

type Handler struct {
	pipeline *discovery.Pipeline
}

func NewHandler(pipeline *discovery.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

type earningsResponse struct {
	StockCode string            `json:"stock_code"`
	Materials []models.Material `json:"materials"`
}

// HandleEarnings answers GET /api/earnings/<code>. The discovery core
// never fails, so the only error responses are a malformed code (400)
// and an empty result (404).
func (h *Handler) HandleEarnings(w http.ResponseWriter, r *http.Request) {
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

	code := strings.TrimPrefix(r.URL.Path, "/api/earnings/")
	if !models.ValidStockCode(code) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "無効な証券コードです。4桁の数字を入力してください。",
		})
		return
	}

	materials := h.pipeline.Discover(r.Context(), code, defaultYears)
	if len(materials) == 0 {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":      "決算資料が見つかりませんでした。",
			"stock_code": code,
		})
		return
	}

	json.NewEncoder(w).Encode(earningsResponse{StockCode: code, Materials: materials})
}
