// Package search exposes issuer search over the stock master.
package search

import (
	"encoding/json"
	"net/http"
	"strings"

	"earnings_navi/pkg/core/store"
	"earnings_navi/pkg/models"
)

type Handler struct {
	master *store.MasterCache
}

func NewHandler(master *store.MasterCache) *Handler {
	return &Handler{master: master}
}

type searchResponse struct {
	Results []models.Stock `json:"results"`
}

// HandleSearch answers GET /api/search?query=<name fragment or code>.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
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

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "検索キーワードを入力してください"})
		return
	}

	results, err := h.master.Search(r.Context(), query)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if results == nil {
		results = []models.Stock{}
	}

	json.NewEncoder(w).Encode(searchResponse{Results: results})
}
