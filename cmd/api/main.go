package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"earnings_navi/pkg/api/earnings"
	"earnings_navi/pkg/api/favorites"
	"earnings_navi/pkg/api/health"
	"earnings_navi/pkg/api/marketcap"
	"earnings_navi/pkg/api/search"
	"earnings_navi/pkg/core/directory"
	"earnings_navi/pkg/core/discovery"
	"earnings_navi/pkg/core/quote"
	"earnings_navi/pkg/core/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

const masterCacheTTL = 5 * time.Minute

func main() {
	// Load environment variables
	godotenv.Load()

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	// Scraper settings; a missing file just means defaults.
	var scraperCfg discovery.Config
	if data, err := os.ReadFile("config/scraper.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &scraperCfg); err != nil {
			logger.Warn("failed to parse config/scraper.yaml, using defaults", zap.Error(err))
		}
	} else {
		logger.Info("config/scraper.yaml not found, using defaults")
	}
	scraperCfg.ApplyDefaults()

	dir := directory.New(logger)
	pipeline := discovery.DefaultPipeline(scraperCfg, dir, logger)
	quotes := quote.NewClient(logger)

	// Persistence: Postgres when DATABASE_URL is set, local JSON files
	// otherwise.
	var favStore store.FavoritesStore
	var masterStore store.MasterStore
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.NewPool(context.Background())
		if err != nil {
			logger.Fatal("database init failed", zap.Error(err))
		}
		defer pool.Close()
		favStore = store.NewPGFavorites(pool)
		masterStore = store.NewPGMaster(pool)
		logger.Info("using Postgres persistence")
	} else {
		favStore = store.NewFileFavorites("favorites.json")
		masterStore = store.NewFileMaster("stock_master.json")
		logger.Info("using local file persistence")
	}
	masterCache := store.NewMasterCache(masterStore, masterCacheTTL, logger)

	http.HandleFunc("/api/health", health.Handle)

	searchHandler := search.NewHandler(masterCache)
	http.HandleFunc("/api/search", searchHandler.HandleSearch)

	earningsHandler := earnings.NewHandler(pipeline)
	http.HandleFunc("/api/earnings/", earningsHandler.HandleEarnings)

	favoritesHandler := favorites.NewHandler(favStore, dir)
	http.HandleFunc("/api/favorites", favoritesHandler.HandleFavorites)
	http.HandleFunc("/api/favorites/", favoritesHandler.HandleRemove)

	marketCapHandler := marketcap.NewHandler(quotes)
	http.HandleFunc("/api/market-cap/", marketCapHandler.HandleMarketCap)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	logger.Info("API server starting", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
