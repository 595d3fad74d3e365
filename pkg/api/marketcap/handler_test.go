package marketcap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"earnings_navi/pkg/core/quote"

	"go.uber.org/zap"
)

func TestHandleMarketCapInvalidCode(t *testing.T) {
	h := NewHandler(quote.NewClient(zap.NewNop()))

	for _, code := range []string{"", "12", "abcd", "12345"} {
		req := httptest.NewRequest(http.MethodGet, "/api/market-cap/"+code, nil)
		rec := httptest.NewRecorder()
		h.HandleMarketCap(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("code %q: status = %d, want 400", code, rec.Code)
		}
	}
}

func TestHandleMarketCapMethods(t *testing.T) {
	h := NewHandler(quote.NewClient(zap.NewNop()))

	req := httptest.NewRequest(http.MethodOptions, "/api/market-cap/7203", nil)
	rec := httptest.NewRecorder()
	h.HandleMarketCap(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("OPTIONS status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/market-cap/7203", nil)
	rec = httptest.NewRecorder()
	h.HandleMarketCap(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
}
