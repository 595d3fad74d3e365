package discovery

import (
	"context"
	"net/http"
	"strings"
	"time"

	"earnings_navi/pkg/core/irtext"
	"earnings_navi/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

const irBankBaseURL = "https://irbank.net"

// Listing-entry allowlist: investor-briefing materials only. Short-form
// summary filings (短信) are published elsewhere and are excluded here.
var irBankKeywords = []string{"決算説明", "説明資料", "プレゼン", "説明会"}

// IRBankFetcher scrapes the IR BANK aggregator. IR BANK publishes one
// menu page per document, so each listing candidate requires a second
// fetch of its detail page to find the actual PDF link.
type IRBankFetcher struct {
	client  *http.Client
	cfg     Config
	baseURL string
}

func NewIRBankFetcher(client *http.Client, cfg Config) *IRBankFetcher {
	return &IRBankFetcher{client: client, cfg: cfg, baseURL: irBankBaseURL}
}

func (f *IRBankFetcher) Name() string { return SourceIRBank }

type irBankCandidate struct {
	title     string
	detailURL string
}

func (f *IRBankFetcher) Fetch(ctx context.Context, code, companyName string) ([]models.Material, error) {
	listURL := f.baseURL + "/" + code + "/ir"
	doc, err := fetchDocument(ctx, f.client, f.cfg.UserAgent, listURL)
	if err != nil {
		return nil, err
	}

	var candidates []irBankCandidate
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())

		if !containsAny(text, irBankKeywords) || strings.Contains(text, "短信") {
			return
		}
		if !strings.HasPrefix(href, "/") {
			return
		}
		candidates = append(candidates, irBankCandidate{title: text, detailURL: f.baseURL + href})
	})

	cutoff := time.Now().AddDate(0, 0, -365*f.cfg.LookbackYears)

	var materials []models.Material
	for _, cand := range candidates {
		if len(materials) >= f.cfg.MaxCandidates {
			break
		}
		if ctx.Err() != nil {
			break
		}

		pdfURL, err := f.firstPDFLink(ctx, cand.detailURL)
		if err != nil || pdfURL == "" {
			continue
		}

		announced, ok := irtext.ExtractDate(cand.title)
		if !ok {
			announced, ok = irtext.ExtractDate(pdfURL)
		}
		if !ok {
			announced = time.Now().Format("2006-01-02")
		}

		// Discard anything older than the lookback window, but keep the
		// record when the date cannot be parsed at all.
		if parsed, perr := time.Parse("2006-01-02", announced); perr == nil && parsed.Before(cutoff) {
			continue
		}

		materials = append(materials, models.Material{
			Title:            cand.title,
			CompanyName:      companyName,
			StockCode:        code,
			FiscalYear:       irtext.ExtractFiscalYear(cand.title),
			Period:           irtext.ExtractPeriod(cand.title),
			AnnouncementDate: announced,
			PDFURL:           pdfURL,
			Type:             irtext.ClassifyType(cand.title),
			Source:           SourceIRBank,
		})

		// Informal rate limit toward IR BANK between detail fetches.
		time.Sleep(f.cfg.detailDelay())
	}

	return materials, nil
}

// firstPDFLink fetches a detail page and returns the first PDF href on
// it, resolved to an absolute URL. Scanning stops at the first hit.
func (f *IRBankFetcher) firstPDFLink(ctx context.Context, detailURL string) (string, error) {
	doc, err := fetchDocument(ctx, f.client, f.cfg.UserAgent, detailURL)
	if err != nil {
		return "", err
	}

	pdfURL := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if isPDFLink(href) {
			pdfURL = absoluteURL(detailURL, href)
			return false
		}
		return true
	})
	return pdfURL, nil
}
