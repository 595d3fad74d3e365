package discovery

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"earnings_navi/pkg/core/directory"
	"earnings_navi/pkg/core/irtext"
	"earnings_navi/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

// Link-text allowlist for a company's own IR library page. English terms
// are matched as-is; IR pages mix both scripts freely.
var irPageKeywords = []string{
	"決算", "説明", "資料", "プレゼン", "短信",
	"presentation", "earnings", "financial",
}

// CompanyIRFetcher scrapes the issuer's own IR page for PDF materials
// and emits any directly known document links from the directory table.
type CompanyIRFetcher struct {
	dir    *directory.Directory
	client *http.Client
	cfg    Config
}

func NewCompanyIRFetcher(dir *directory.Directory, client *http.Client, cfg Config) *CompanyIRFetcher {
	return &CompanyIRFetcher{dir: dir, client: client, cfg: cfg}
}

func (f *CompanyIRFetcher) Name() string { return SourceCompanyIR }

func (f *CompanyIRFetcher) Fetch(ctx context.Context, code, companyName string) ([]models.Material, error) {
	entry := f.dir.Lookup(code)
	var materials []models.Material

	for _, pdfURL := range entry.DirectLinks {
		filename := path.Base(pdfURL)
		title := strings.ReplaceAll(strings.TrimSuffix(filename, ".pdf"), "_", " ")
		materials = append(materials, models.Material{
			Title:            title,
			CompanyName:      companyName,
			StockCode:        code,
			FiscalYear:       irtext.ExtractFiscalYear(filename),
			Period:           irtext.ExtractPeriod(filename),
			AnnouncementDate: time.Now().Format("2006-01-02"),
			PDFURL:           pdfURL,
			Type:             irtext.ClassifyType(filename),
			Source:           SourceCompanyIR,
		})
	}

	if entry.IRPageURL != "" {
		scraped, err := f.scrapeIRPage(ctx, entry.IRPageURL, code, companyName)
		if err != nil {
			// Direct links may still have produced something.
			if len(materials) == 0 {
				return nil, err
			}
			return materials, nil
		}
		materials = append(materials, scraped...)
	}

	return materials, nil
}

// scrapeIRPage scans every hyperlink on the IR library page and keeps
// PDF targets whose link text passes the earnings keyword allowlist.
func (f *CompanyIRFetcher) scrapeIRPage(ctx context.Context, pageURL, code, companyName string) ([]models.Material, error) {
	doc, err := fetchDocument(ctx, f.client, f.cfg.UserAgent, pageURL)
	if err != nil {
		return nil, err
	}

	var materials []models.Material
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())

		if !isPDFLink(href) || !containsAny(text, irPageKeywords) {
			return
		}

		// Heuristics run on the link text when present, else the URL.
		basis := text
		if basis == "" {
			basis = href
		}
		title := text
		if title == "" {
			title = path.Base(href)
		}

		announced, ok := irtext.ExtractDate(basis)
		if !ok {
			announced = time.Now().Format("2006-01-02")
		}

		materials = append(materials, models.Material{
			Title:            title,
			CompanyName:      companyName,
			StockCode:        code,
			FiscalYear:       irtext.ExtractFiscalYear(basis),
			Period:           irtext.ExtractPeriod(basis),
			AnnouncementDate: announced,
			PDFURL:           absoluteURL(pageURL, href),
			Type:             irtext.ClassifyType(basis),
			Source:           SourceCompanyIR,
		})
	})

	return materials, nil
}
