// Package health exposes the liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"
)

// Handle answers GET /api/health.
func Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
