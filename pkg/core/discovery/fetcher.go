package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"earnings_navi/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// Source tags recorded on each material for provenance.
const (
	SourceCompanyIR   = "企業IRページ"
	SourceIRBank      = "IR BANK"
	SourceTDNet       = "TDnet"
	SourceBuffettCode = "BuffettCode"
)

// Fetcher locates candidate earnings materials from one external source.
// Implementations must be side-effect free apart from network reads; a
// returned error means "this source contributed nothing", never a fatal
// condition for the pipeline.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, code, companyName string) ([]models.Material, error)
}

// SourceResult is the typed per-source outcome the pipeline aggregates.
// Failures stay internal: the external contract collapses them to an
// empty contribution, but the reason is kept for attribution in logs.
type SourceResult struct {
	Source    string
	Materials []models.Material
	Err       error
}

// fetchDocument issues a GET with a browser User-Agent and parses the
// 2xx response body as HTML. Non-2xx statuses are reported as errors so
// fetchers can treat them as "no data".
func fetchDocument(ctx context.Context, client *http.Client, userAgent, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, pageURL)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// absoluteURL resolves href against the page it was found on.
func absoluteURL(pageURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// isPDFLink reports whether href points at a PDF resource, directly or
// with trailing query parts.
func isPDFLink(href string) bool {
	return strings.Contains(strings.ToLower(href), ".pdf")
}

// containsAny reports whether text contains at least one of the keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
