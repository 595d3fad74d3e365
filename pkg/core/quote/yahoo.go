// Package quote looks up market capitalization for Japanese issuers via
// the Yahoo Finance quote API (ticker = "<code>.T").
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"earnings_navi/pkg/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	yahooQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"
	browserUA     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// One oku = 100 million yen, the customary unit for market caps.
var okuYen = decimal.NewFromInt(100_000_000)

// yahooQuoteResponse mirrors the fields we need from the quote payload.
type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol    string  `json:"symbol"`
			MarketCap float64 `json:"marketCap"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteResponse"`
}

// Client fetches quotes with a bounded timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    yahooQuoteURL,
		logger:     logger,
	}
}

// FetchMarketCap returns the market capitalization for a 4-digit stock
// code, or (nil, nil) when the provider has no value for it.
func (c *Client) FetchMarketCap(ctx context.Context, code string) (*models.MarketCap, error) {
	url := fmt.Sprintf("%s?symbols=%s.T&fields=symbol,marketCap", c.baseURL, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	var parsed yahooQuoteResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}

	if len(parsed.QuoteResponse.Result) == 0 || parsed.QuoteResponse.Result[0].MarketCap <= 0 {
		c.logger.Info("no market cap available", zap.String("code", code))
		return nil, nil
	}

	mc := decimal.NewFromFloat(parsed.QuoteResponse.Result[0].MarketCap)
	return &models.MarketCap{
		MarketCap:    mc.IntPart(),
		MarketCapOku: mc.Div(okuYen).IntPart(),
		Currency:     "JPY",
	}, nil
}
