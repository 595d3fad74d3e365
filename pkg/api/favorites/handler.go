// Package favorites exposes the bookmarked-issuers endpoints.
package favorites

import (
	"encoding/json"
	"net/http"
	"strings"

	"earnings_navi/pkg/core/directory"
	"earnings_navi/pkg/core/store"
	"earnings_navi/pkg/models"
)

type Handler struct {
	store store.FavoritesStore
	dir   *directory.Directory
}

func NewHandler(favStore store.FavoritesStore, dir *directory.Directory) *Handler {
	return &Handler{store: favStore, dir: dir}
}

type listResponse struct {
	Favorites []models.Favorite `json:"favorites"`
}

type addRequest struct {
	StockCode string `json:"stock_code"`
}

// HandleFavorites answers GET and POST /api/favorites.
func (h *Handler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.store.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	json.NewEncoder(w).Encode(listResponse{Favorites: favorites})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "無効なリクエストです"})
		return
	}

	if !models.ValidStockCode(req.StockCode) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "無効な証券コードです"})
		return
	}

	companyName := h.dir.ResolveName(r.Context(), req.StockCode)

	added, err := h.store.Add(r.Context(), req.StockCode, companyName)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if !added {
		json.NewEncoder(w).Encode(map[string]string{"message": "既にお気に入りに登録されています"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message":      "お気に入りに追加しました",
		"company_name": companyName,
	})
}

// HandleRemove answers DELETE /api/favorites/<code>.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/api/favorites/")

	removed, err := h.store.Remove(r.Context(), code)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	if !removed {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "お気に入りに登録されていません"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"message": "お気に入りから削除しました"})
}
