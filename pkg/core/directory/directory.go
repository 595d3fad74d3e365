// Package directory resolves 4-digit stock codes to company names and
// to the known IR-page locations of major issuers. Name resolution
// never fails: remote lookups degrade to a placeholder label.
package directory

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	irBankURL      = "https://irbank.net"
	yahooFinanceJP = "https://finance.yahoo.co.jp"

	// Browser-like identity; several IR sites reject the default Go agent.
	browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Entry describes what is known about an issuer up front: its display
// name, the IR library page worth scraping, and any document URLs that
// can be linked directly without scraping.
type Entry struct {
	Name        string
	IRPageURL   string
	DirectLinks []string
}

// Static table of well-known issuers. Codes absent from this table are
// resolved remotely.
var companyTable = map[string]Entry{
	"7203": {Name: "トヨタ自動車", IRPageURL: "https://global.toyota/jp/ir/library/"},
	"9984": {Name: "ソフトバンクグループ", IRPageURL: "https://www.softbank.jp/corp/ir/documents/"},
	"6758": {Name: "ソニーグループ", IRPageURL: "https://www.sony.com/ja/SonyInfo/IR/library/presen.html"},
	"8306": {Name: "三菱UFJフィナンシャル・グループ", IRPageURL: "https://www.mufg.jp/ir/presentation/"},
	"9433": {Name: "KDDI", IRPageURL: "https://www.kddi.com/corporate/ir/library/"},
	"9437": {Name: "NTTドコモ"},
	"6861": {Name: "キーエンス"},
	"6954": {Name: "ファナック"},
	"4063": {Name: "信越化学工業"},
	"4502": {Name: "武田薬品工業"},
}

// Directory performs code → name / IR-page resolution.
type Directory struct {
	client *http.Client
	irBank string
	yahoo  string
	logger *zap.Logger
}

// New creates a Directory with the standard 10-second outbound timeout.
func New(logger *zap.Logger) *Directory {
	return &Directory{
		client: &http.Client{Timeout: 10 * time.Second},
		irBank: irBankURL,
		yahoo:  yahooFinanceJP,
		logger: logger,
	}
}

// Lookup returns the static entry for code. Unknown codes yield a
// zero-value entry with a placeholder name.
func (d *Directory) Lookup(code string) Entry {
	if entry, ok := companyTable[code]; ok {
		return entry
	}
	return Entry{Name: Placeholder(code)}
}

// Placeholder is the display name used when no real name can be found.
func Placeholder(code string) string {
	return fmt.Sprintf("企業コード%s", code)
}

// ResolveName resolves code to a display name: static table first, then
// IR BANK, then Yahoo Finance, then the placeholder. This function never
// returns an error.
func (d *Directory) ResolveName(ctx context.Context, code string) string {
	if entry, ok := companyTable[code]; ok {
		return entry.Name
	}

	if name, err := d.nameFromIRBank(ctx, code); err == nil && name != "" {
		return name
	} else if err != nil {
		d.logger.Warn("IR BANK name lookup failed", zap.String("code", code), zap.Error(err))
	}

	if name, err := d.nameFromYahoo(ctx, code); err == nil && name != "" {
		return name
	} else if err != nil {
		d.logger.Warn("Yahoo Finance name lookup failed", zap.String("code", code), zap.Error(err))
	}

	return Placeholder(code)
}

func (d *Directory) nameFromIRBank(ctx context.Context, code string) (string, error) {
	doc, err := d.fetchDocument(ctx, fmt.Sprintf("%s/%s", d.irBank, code))
	if err != nil {
		return "", err
	}

	heading := doc.Find("h1.company-name").First()
	if heading.Length() == 0 {
		heading = doc.Find("h1").First()
	}
	if heading.Length() == 0 {
		return "", nil
	}
	return CleanIRBankHeading(strings.TrimSpace(heading.Text())), nil
}

func (d *Directory) nameFromYahoo(ctx context.Context, code string) (string, error) {
	doc, err := d.fetchDocument(ctx, fmt.Sprintf("%s/quote/%s.T", d.yahoo, code))
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		return "", nil
	}
	return CleanYahooHeading(title), nil
}

func (d *Directory) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

var (
	reLeadingCode = regexp.MustCompile(`^\d{4}\s+`)
	reNameParen   = regexp.MustCompile(`^(.+?)\s*[\(（]`)
)

// CleanIRBankHeading strips the stock code decorations IR BANK puts
// around a company name ("7203 トヨタ自動車" or "トヨタ自動車 (7203)").
func CleanIRBankHeading(heading string) string {
	name := reLeadingCode.ReplaceAllString(heading, "")
	if m := reNameParen.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1])
	}
	return name
}

// CleanYahooHeading extracts the name from a "企業名 (コード)" title.
func CleanYahooHeading(title string) string {
	if m := reNameParen.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	return title
}
