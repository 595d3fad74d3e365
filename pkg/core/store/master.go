package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"earnings_navi/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MasterStore loads the full stock master (code → listed name).
type MasterStore interface {
	LoadAll(ctx context.Context) ([]models.Stock, error)
}

// masterPageSize bounds each page of the full-table fetch.
const masterPageSize = 1000

// PGMaster reads the stock_master table page by page.
type PGMaster struct {
	pool *pgxpool.Pool
}

func NewPGMaster(pool *pgxpool.Pool) *PGMaster {
	return &PGMaster{pool: pool}
}

func (s *PGMaster) LoadAll(ctx context.Context) ([]models.Stock, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	var stocks []models.Stock
	for offset := 0; ; offset += masterPageSize {
		page, err := s.loadPage(ctx, offset)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, page...)
		if len(page) < masterPageSize {
			break
		}
	}
	return stocks, nil
}

func (s *PGMaster) loadPage(ctx context.Context, offset int) ([]models.Stock, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT code, name FROM stock_master ORDER BY code LIMIT $1 OFFSET $2`,
		masterPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock master at offset %d: %w", offset, err)
	}
	defer rows.Close()

	var stocks []models.Stock
	for rows.Next() {
		var stock models.Stock
		if err := rows.Scan(&stock.Code, &stock.Name); err != nil {
			return nil, fmt.Errorf("failed to scan stock row: %w", err)
		}
		stocks = append(stocks, stock)
	}
	return stocks, nil
}

// FileMaster reads the stock master from a local JSON file.
type FileMaster struct {
	path string
}

func NewFileMaster(path string) *FileMaster {
	return &FileMaster{path: path}
}

func (s *FileMaster) LoadAll(ctx context.Context) ([]models.Stock, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock master file: %w", err)
	}

	var stocks []models.Stock
	if err := json.Unmarshal(data, &stocks); err != nil {
		return nil, fmt.Errorf("failed to parse stock master file: %w", err)
	}
	return stocks, nil
}
