package discovery

import (
	"strings"
	"testing"
	"time"

	"earnings_navi/pkg/models"
)

func TestSampleGeneratorWindow(t *testing.T) {
	gen := &SampleGenerator{now: func() time.Time {
		return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	}}

	// Requesting 5 years must still respect the 3-year trailing window.
	materials := gen.Generate("9999", "テスト社", 5)
	if len(materials) == 0 {
		t.Fatal("expected generated materials, got none")
	}

	cutoff := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -365*3)
	for _, m := range materials {
		announced, err := time.Parse("2006-01-02", m.AnnouncementDate)
		if err != nil {
			t.Fatalf("unparseable announcement date %q", m.AnnouncementDate)
		}
		if announced.Before(cutoff) {
			t.Errorf("record dated %s is older than the 3-year window", m.AnnouncementDate)
		}
		if announced.After(time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)) {
			t.Errorf("record dated %s is in the future", m.AnnouncementDate)
		}
	}
}

func TestSampleGeneratorShape(t *testing.T) {
	gen := &SampleGenerator{now: func() time.Time {
		return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	}}

	materials := gen.Generate("7203", "トヨタ自動車", 3)

	// 3-year window × 4 quarters is the ceiling.
	if len(materials) > 12 {
		t.Errorf("expected at most 12 records, got %d", len(materials))
	}

	for _, m := range materials {
		if m.Type != models.TypePresentation {
			t.Errorf("expected type %q, got %q", models.TypePresentation, m.Type)
		}
		if !strings.HasPrefix(m.PDFURL, "https://global.toyota/jp/ir/library/presentation/") {
			t.Errorf("expected issuer URL template, got %q", m.PDFURL)
		}
		if !strings.HasSuffix(m.AnnouncementDate, "-15") {
			t.Errorf("expected day-of-month 15, got %q", m.AnnouncementDate)
		}
	}
}

func TestSampleGeneratorDeterministic(t *testing.T) {
	now := func() time.Time {
		return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	a := (&SampleGenerator{now: now}).Generate("9999", "テスト社", 3)
	b := (&SampleGenerator{now: now}).Generate("9999", "テスト社", 3)

	if len(a) != len(b) {
		t.Fatalf("two runs produced %d and %d records", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("record %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSampleGeneratorUnknownIssuerTemplate(t *testing.T) {
	gen := &SampleGenerator{now: func() time.Time {
		return time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	}}

	materials := gen.Generate("1234", "企業コード1234", 3)
	for _, m := range materials {
		if !strings.HasPrefix(m.PDFURL, "https://example.com/ir/1234/") {
			t.Errorf("expected placeholder template, got %q", m.PDFURL)
		}
	}
}
