// Package irtext extracts structured fields (fiscal year, reporting
// period, date, document classification) from free-text IR document
// titles and URLs. All functions are pure; callers supply their own
// defaults when an extraction reports no match.
package irtext

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"earnings_navi/pkg/models"
)

// =============================================================================
// FISCAL YEAR
// =============================================================================

// Each pattern captures a 4-digit year; the first one that matches wins.
// All matches normalize to "<year>年3月期": the March fiscal-year-end is
// fixed regardless of the month present in the source text.
var fiscalYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})年\d{1,2}月期`),
	regexp.MustCompile(`(?i)FY(\d{4})`),
	regexp.MustCompile(`(20\d{2})`),
}

// ExtractFiscalYear returns the normalized fiscal-year label for text.
// Falls back to the current calendar year when no pattern matches.
func ExtractFiscalYear(text string) string {
	for _, re := range fiscalYearPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return fmt.Sprintf("%s年3月期", m[1])
		}
	}
	return fmt.Sprintf("%d年3月期", time.Now().Year())
}

// =============================================================================
// REPORTING PERIOD
// =============================================================================

// Marker lists are checked in fixed priority order Q1 → Q2 → Q3 → Q4/通期.
// The order is contractual: "上期" resolves to Q2 even when a later-quarter
// marker is also present.
var periodMarkers = []struct {
	markers []string
	period  string
}{
	{[]string{"Q1", "第1四半期", "1Q"}, models.PeriodQ1},
	{[]string{"Q2", "第2四半期", "2Q", "上期"}, models.PeriodQ2},
	{[]string{"Q3", "第3四半期", "3Q"}, models.PeriodQ3},
	{[]string{"Q4", "第4四半期", "4Q", "通期", "本決算"}, models.PeriodFullYear},
}

// ExtractPeriod returns the reporting period signaled by text,
// defaulting to 通期 when no marker is present.
func ExtractPeriod(text string) string {
	for _, entry := range periodMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(text, marker) {
				return entry.period
			}
		}
	}
	return models.PeriodFullYear
}

// =============================================================================
// DATE
// =============================================================================

var (
	reDateKanji   = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	reDateSlashed = regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`)
	reDateCompact = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// ExtractDate looks for a calendar date in text and returns it as
// YYYY-MM-DD. The compact 8-digit form is validated as a real date
// (e.g. a February 30th is rejected); the second return value reports
// whether anything was found.
func ExtractDate(text string) (string, bool) {
	if m := reDateKanji.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3])), true
	}
	if m := reDateSlashed.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3])), true
	}
	if m := reDateCompact.FindStringSubmatch(text); m != nil {
		candidate := fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
		if _, err := time.Parse("2006-01-02", candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// pad2 zero-pads a 1-digit month or day component.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// =============================================================================
// DOCUMENT CLASSIFICATION
// =============================================================================

// ClassifyType maps a document title to one of the closed set of
// material types. Checks run most-specific first, so categories are
// mutually exclusive by construction.
func ClassifyType(title string) string {
	lower := strings.ToLower(title)

	switch {
	case strings.Contains(title, "決算短信") || strings.Contains(title, "短信"):
		return models.TypeTanshin
	case strings.Contains(title, "説明会") || strings.Contains(title, "プレゼン") ||
		strings.Contains(title, "説明資料") || strings.Contains(lower, "presentation"):
		return models.TypePresentation
	case strings.Contains(title, "有価証券報告書") || strings.Contains(title, "報告書"):
		return models.TypeSecuritiesReport
	case strings.Contains(title, "決算"):
		return models.TypeEarnings
	default:
		return models.TypeGeneralIR
	}
}
