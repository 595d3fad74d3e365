package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"earnings_navi/pkg/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoritesStore is the favorites persistence contract. Add is
// idempotent (adding an existing code is not an error) and Remove
// reports whether anything was actually removed.
type FavoritesStore interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, code, companyName string) (added bool, err error)
	Remove(ctx context.Context, code string) (removed bool, err error)
}

// =============================================================================
// POSTGRES VARIANT
// =============================================================================

// PGFavorites stores favorites in the favorites table.
type PGFavorites struct {
	pool *pgxpool.Pool
}

func NewPGFavorites(pool *pgxpool.Pool) *PGFavorites {
	return &PGFavorites{pool: pool}
}

func (s *PGFavorites) List(ctx context.Context) ([]models.Favorite, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := s.pool.Query(ctx,
		`SELECT stock_code, company_name FROM favorites ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.StockCode, &fav.CompanyName); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, fav)
	}
	return favorites, nil
}

func (s *PGFavorites) Add(ctx context.Context, code, companyName string) (bool, error) {
	if s.pool == nil {
		return false, fmt.Errorf("database pool not configured")
	}

	// The unique constraint on stock_code makes re-adding a no-op.
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO favorites (stock_code, company_name) VALUES ($1, $2)
		 ON CONFLICT (stock_code) DO NOTHING`,
		code, companyName)
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PGFavorites) Remove(ctx context.Context, code string) (bool, error) {
	if s.pool == nil {
		return false, fmt.Errorf("database pool not configured")
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM favorites WHERE stock_code = $1`, code)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// =============================================================================
// LOCAL FILE VARIANT
// =============================================================================

// FileFavorites stores favorites in a local JSON file for deployments
// without a database.
type FileFavorites struct {
	mu   sync.Mutex
	path string
}

func NewFileFavorites(path string) *FileFavorites {
	return &FileFavorites{path: path}
}

func (s *FileFavorites) List(ctx context.Context) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileFavorites) Add(ctx context.Context, code, companyName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load()
	if err != nil {
		return false, err
	}
	for _, fav := range favorites {
		if fav.StockCode == code {
			return false, nil
		}
	}

	favorites = append(favorites, models.Favorite{StockCode: code, CompanyName: companyName})
	if err := s.save(favorites); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileFavorites) Remove(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites, err := s.load()
	if err != nil {
		return false, err
	}

	kept := favorites[:0:0]
	for _, fav := range favorites {
		if fav.StockCode != code {
			kept = append(kept, fav)
		}
	}
	if len(kept) == len(favorites) {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileFavorites) load() ([]models.Favorite, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(data, &favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites file: %w", err)
	}
	return favorites, nil
}

func (s *FileFavorites) save(favorites []models.Favorite) error {
	data, err := json.MarshalIndent(favorites, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}
