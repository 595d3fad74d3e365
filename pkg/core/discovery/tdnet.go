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

const tdnetBaseURL = "https://www.release.tdnet.info"

var tdnetKeywords = []string{"決算", "業績", "説明会", "説明資料", "短信", "決定", "IR"}

// TDNetFetcher walks the disclosure network's daily list pages, newest
// first, and picks out rows filed under the requested stock code. TDnet
// offers no per-company index, so the walk is capped at a configurable
// number of days to bound the request volume.
type TDNetFetcher struct {
	client  *http.Client
	cfg     Config
	baseURL string
}

func NewTDNetFetcher(client *http.Client, cfg Config) *TDNetFetcher {
	return &TDNetFetcher{client: client, cfg: cfg, baseURL: tdnetBaseURL}
}

func (f *TDNetFetcher) Name() string { return SourceTDNet }

func (f *TDNetFetcher) Fetch(ctx context.Context, code, companyName string) ([]models.Material, error) {
	var materials []models.Material
	now := time.Now()

	for i := 0; i < f.cfg.TDNetLookbackDays; i++ {
		if ctx.Err() != nil {
			break
		}

		day := now.AddDate(0, 0, -i)
		listURL := fmt.Sprintf("%s/inbs/I_list_001_%s.html", f.baseURL, day.Format("20060102"))

		doc, err := fetchDocument(ctx, f.client, f.cfg.UserAgent, listURL)
		if err != nil {
			// Days without disclosures 404; keep walking.
			continue
		}

		materials = append(materials, f.scanDailyList(doc, code, companyName, day)...)
		time.Sleep(f.cfg.detailDelay())
	}

	return materials, nil
}

// scanDailyList extracts this issuer's earnings-related rows from one
// daily disclosure table.
func (f *TDNetFetcher) scanDailyList(doc *goquery.Document, code, companyName string, day time.Time) []models.Material {
	var materials []models.Material

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		if !strings.Contains(strings.TrimSpace(cells.Eq(0).Text()), code) {
			return
		}

		titleCell := cells.Eq(2)
		title := strings.TrimSpace(titleCell.Text())
		if !containsAny(title, tdnetKeywords) {
			return
		}

		href, ok := titleCell.Find("a").First().Attr("href")
		if !ok {
			return
		}

		materials = append(materials, models.Material{
			Title:            title,
			CompanyName:      companyName,
			StockCode:        code,
			FiscalYear:       irtext.ExtractFiscalYear(title),
			Period:           irtext.ExtractPeriod(title),
			AnnouncementDate: day.Format("2006-01-02"),
			PDFURL:           absoluteURL(f.baseURL, href),
			Type:             irtext.ClassifyType(title),
			Source:           SourceTDNet,
		})
	})

	return materials
}
