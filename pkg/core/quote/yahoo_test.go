package quote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestClient(server *httptest.Server) *Client {
	c := NewClient(zap.NewNop())
	c.httpClient = server.Client()
	c.baseURL = server.URL
	return c
}

func TestFetchMarketCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbols"); got != "7203.T" {
			t.Errorf("symbols = %q, want 7203.T", got)
		}
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"7203.T","marketCap":35000000000000}],"error":null}}`)
	}))
	defer server.Close()

	info, err := newTestClient(server).FetchMarketCap(context.Background(), "7203")
	if err != nil {
		t.Fatalf("FetchMarketCap: %v", err)
	}
	if info == nil {
		t.Fatal("expected market cap info, got nil")
	}

	if info.MarketCap != 35_000_000_000_000 {
		t.Errorf("MarketCap = %d, want 35000000000000", info.MarketCap)
	}
	// 35兆円 / 1億円 = 350,000 oku.
	if info.MarketCapOku != 350_000 {
		t.Errorf("MarketCapOku = %d, want 350000", info.MarketCapOku)
	}
	if info.Currency != "JPY" {
		t.Errorf("Currency = %q, want JPY", info.Currency)
	}
}

func TestFetchMarketCapOkuTruncation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1.9 oku truncates to 1, never rounds up.
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"9999.T","marketCap":190000000}],"error":null}}`)
	}))
	defer server.Close()

	info, err := newTestClient(server).FetchMarketCap(context.Background(), "9999")
	if err != nil {
		t.Fatalf("FetchMarketCap: %v", err)
	}
	if info == nil {
		t.Fatal("expected market cap info, got nil")
	}
	if info.MarketCapOku != 1 {
		t.Errorf("MarketCapOku = %d, want 1", info.MarketCapOku)
	}
}

func TestFetchMarketCapMissingValue(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty result", `{"quoteResponse":{"result":[],"error":null}}`},
		{"zero cap", `{"quoteResponse":{"result":[{"symbol":"9999.T","marketCap":0}],"error":null}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, c.body)
			}))
			defer server.Close()

			info, err := newTestClient(server).FetchMarketCap(context.Background(), "9999")
			if err != nil {
				t.Fatalf("FetchMarketCap: %v", err)
			}
			if info != nil {
				t.Errorf("expected nil for an absent value, got %+v", info)
			}
		})
	}
}

func TestFetchMarketCapBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := newTestClient(server).FetchMarketCap(context.Background(), "7203"); err == nil {
		t.Error("expected an error for a non-200 status")
	}
}
