// Package discovery implements the multi-source earnings-materials
// discovery pipeline: fan out to heterogeneous IR document sources,
// merge, deduplicate by PDF URL, sort newest first, and degrade to
// synthetic records when live scraping yields nothing.
package discovery

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"earnings_navi/pkg/core/directory"
	"earnings_navi/pkg/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The synthetic fallback always covers a fixed 3-year window regardless
// of the caller's requested range.
const sampleYears = 3

// Pipeline orchestrates company-name resolution, the fetcher registry
// and the sample fallback. The registry order is canonical: it fixes
// which source wins when two sources list the same PDF.
type Pipeline struct {
	dir      *directory.Directory
	fetchers []Fetcher
	sample   *SampleGenerator
	logger   *zap.Logger
}

func NewPipeline(dir *directory.Directory, fetchers []Fetcher, sample *SampleGenerator, logger *zap.Logger) *Pipeline {
	return &Pipeline{dir: dir, fetchers: fetchers, sample: sample, logger: logger}
}

// DefaultPipeline wires the standard source registry: the issuer's own
// IR page, then IR BANK, then TDnet, then BuffettCode.
func DefaultPipeline(cfg Config, dir *directory.Directory, logger *zap.Logger) *Pipeline {
	client := &http.Client{Timeout: cfg.timeout()}
	fetchers := []Fetcher{
		NewCompanyIRFetcher(dir, client, cfg),
		NewIRBankFetcher(client, cfg),
		NewTDNetFetcher(client, cfg),
		NewBuffettCodeFetcher(client, cfg),
	}
	return NewPipeline(dir, fetchers, NewSampleGenerator(), logger)
}

// Discover returns all located earnings materials for a validated
// 4-digit stock code, newest first. It never fails: source errors
// contribute nothing, and an orchestration fault yields an empty list.
func (p *Pipeline) Discover(ctx context.Context, code string, years int) (materials []models.Material) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("discovery aborted", zap.String("code", code), zap.Any("panic", r))
			materials = nil
		}
	}()

	log := p.logger.With(zap.String("run_id", uuid.NewString()), zap.String("code", code))

	companyName := p.dir.ResolveName(ctx, code)
	log.Info("discovering earnings materials",
		zap.String("company", companyName), zap.Int("years", years))

	// Fetchers are independent network readers, so they run
	// concurrently; results merge in registry order to keep dedup
	// precedence deterministic regardless of completion order.
	results := make([]SourceResult, len(p.fetchers))
	var wg sync.WaitGroup
	for i, fetcher := range p.fetchers {
		wg.Add(1)
		go func(i int, fetcher Fetcher) {
			defer wg.Done()
			// A panicking fetcher must not take the process down; it
			// degrades to a failed source like any other error.
			defer func() {
				if r := recover(); r != nil {
					results[i] = SourceResult{
						Source: fetcher.Name(),
						Err:    fmt.Errorf("fetcher panicked: %v", r),
					}
				}
			}()
			mats, err := fetcher.Fetch(ctx, code, companyName)
			results[i] = SourceResult{Source: fetcher.Name(), Materials: mats, Err: err}
		}(i, fetcher)
	}
	wg.Wait()

	var merged []models.Material
	for _, res := range results {
		if res.Err != nil {
			log.Warn("source contributed nothing",
				zap.String("source", res.Source), zap.Error(res.Err))
			continue
		}
		log.Info("source contributed",
			zap.String("source", res.Source), zap.Int("count", len(res.Materials)))
		merged = append(merged, res.Materials...)
	}

	// Synthetic records only when every live source came up empty.
	if len(merged) == 0 {
		log.Info("no live materials found, falling back to generated records")
		merged = p.sample.Generate(code, companyName, sampleYears)
	}

	merged = dedupeByURL(merged)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].AnnouncementDate > merged[j].AnnouncementDate
	})

	log.Info("discovery complete", zap.Int("count", len(merged)))
	return merged
}

// dedupeByURL keeps the first-seen record for each distinct PDF URL.
// Records without a URL cannot be identified and are dropped.
func dedupeByURL(materials []models.Material) []models.Material {
	seen := make(map[string]bool, len(materials))
	unique := materials[:0:0]
	for _, m := range materials {
		if m.PDFURL == "" || seen[m.PDFURL] {
			continue
		}
		seen[m.PDFURL] = true
		unique = append(unique, m)
	}
	return unique
}
