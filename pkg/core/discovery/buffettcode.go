package discovery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"earnings_navi/pkg/core/irtext"
	"earnings_navi/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

const buffettCodeBaseURL = "https://www.buffett-code.com"

var buffettCodeKeywords = []string{"決算", "説明", "資料", "IR"}

// BuffettCodeFetcher scrapes the BuffettCode per-company IR listing, a
// single-page aggregator with direct PDF links.
type BuffettCodeFetcher struct {
	client  *http.Client
	cfg     Config
	baseURL string
}

func NewBuffettCodeFetcher(client *http.Client, cfg Config) *BuffettCodeFetcher {
	return &BuffettCodeFetcher{client: client, cfg: cfg, baseURL: buffettCodeBaseURL}
}

func (f *BuffettCodeFetcher) Name() string { return SourceBuffettCode }

func (f *BuffettCodeFetcher) Fetch(ctx context.Context, code, companyName string) ([]models.Material, error) {
	pageURL := fmt.Sprintf("%s/company/%s/ir/", f.baseURL, code)
	doc, err := fetchDocument(ctx, f.client, f.cfg.UserAgent, pageURL)
	if err != nil {
		return nil, err
	}

	var materials []models.Material
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())

		if !containsAny(text, buffettCodeKeywords) || !isPDFLink(href) {
			return
		}

		announced, ok := irtext.ExtractDate(text)
		if !ok {
			announced = time.Now().Format("2006-01-02")
		}

		materials = append(materials, models.Material{
			Title:            text,
			CompanyName:      companyName,
			StockCode:        code,
			FiscalYear:       irtext.ExtractFiscalYear(text),
			Period:           irtext.ExtractPeriod(text),
			AnnouncementDate: announced,
			PDFURL:           absoluteURL(pageURL, href),
			Type:             irtext.ClassifyType(text),
			Source:           SourceBuffettCode,
		})
	})

	return materials, nil
}
