// Package models defines the shared data types exchanged between the
// discovery core, the persistence layer and the HTTP API.
package models

// Reporting periods. The Japanese labels are the wire format expected by
// the frontend, so the constants double as JSON values.
const (
	PeriodQ1       = "第1四半期"
	PeriodQ2       = "第2四半期"
	PeriodQ3       = "第3四半期"
	PeriodFullYear = "通期"
)

// Document classifications, most specific first.
const (
	TypeTanshin          = "決算短信"
	TypePresentation     = "決算説明会資料"
	TypeSecuritiesReport = "有価証券報告書"
	TypeEarnings         = "決算資料"
	TypeGeneralIR        = "IR資料"
)

// Material is one earnings-related IR document located for a stock code.
// PDFURL is the identity of a material: two records with the same PDFURL
// are the same document.
type Material struct {
	Title            string `json:"title"`
	CompanyName      string `json:"company_name"`
	StockCode        string `json:"stock_code"`
	FiscalYear       string `json:"fiscal_year"`       // normalized "<year>年3月期"
	Period           string `json:"period"`            // one of the Period* constants
	AnnouncementDate string `json:"announcement_date"` // YYYY-MM-DD
	PDFURL           string `json:"pdf_url"`
	Type             string `json:"type"` // one of the Type* constants
	Source           string `json:"source"`
}

// Favorite is a bookmarked issuer.
type Favorite struct {
	StockCode   string `json:"stock_code"`
	CompanyName string `json:"company_name"`
}

// Stock is one row of the stock master (code → listed company name).
type Stock struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ValidStockCode reports whether code is exactly 4 ASCII digits, the
// only shape the discovery core accepts.
func ValidStockCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MarketCap is the quote-provider market capitalization result.
// MarketCapOku is the value in units of 100 million yen, truncated.
type MarketCap struct {
	MarketCap    int64  `json:"market_cap"`
	MarketCapOku int64  `json:"market_cap_oku"`
	Currency     string `json:"currency"`
}
