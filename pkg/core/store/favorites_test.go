package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestFileFavoritesAddListRemove(t *testing.T) {
	ctx := context.Background()
	s := NewFileFavorites(filepath.Join(t.TempDir(), "favorites.json"))

	// Listing before the file exists is an empty list, not an error.
	favorites, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List on missing file: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(favorites))
	}

	added, err := s.Add(ctx, "7203", "トヨタ自動車")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !added {
		t.Error("first Add should report added=true")
	}

	// Re-adding the same code is a no-op, not an error.
	added, err = s.Add(ctx, "7203", "トヨタ自動車")
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if added {
		t.Error("second Add should report added=false")
	}

	if _, err := s.Add(ctx, "9984", "ソフトバンクグループ"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	favorites, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].StockCode != "7203" || favorites[0].CompanyName != "トヨタ自動車" {
		t.Errorf("unexpected first favorite %+v", favorites[0])
	}

	removed, err := s.Remove(ctx, "7203")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Error("Remove of an existing code should report removed=true")
	}

	removed, err = s.Remove(ctx, "7203")
	if err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if removed {
		t.Error("Remove of an absent code should report removed=false")
	}

	favorites, err = s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favorites) != 1 || favorites[0].StockCode != "9984" {
		t.Errorf("expected only 9984 to remain, got %+v", favorites)
	}
}

func TestFileFavoritesPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.json")

	first := NewFileFavorites(path)
	if _, err := first.Add(ctx, "6758", "ソニーグループ"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// A fresh store over the same file sees the earlier write.
	second := NewFileFavorites(path)
	favorites, err := second.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favorites) != 1 || favorites[0].StockCode != "6758" {
		t.Errorf("expected persisted favorite, got %+v", favorites)
	}
}
