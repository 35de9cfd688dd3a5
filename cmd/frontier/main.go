package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"frontierlab/internal/chart"
	"frontierlab/internal/config"
	"frontierlab/internal/frontier"
	"frontierlab/internal/insight"
	"frontierlab/internal/notify"
	"frontierlab/internal/prices"
	"frontierlab/internal/server"
	"frontierlab/internal/storage"
)

func main() {
	csvPath := flag.String("csv", "", "load prices from a CSV file instead of fetching")
	serve := flag.Bool("serve", false, "serve the dataset directory over HTTP after generating")
	flag.Parse()

	cfg := config.Load()
	if *csvPath != "" {
		cfg.CSVPath = *csvPath
	}

	table := loadPrices(cfg)
	log.Printf("prices: %d rows x %d assets (%s)", table.NumRows(), table.NumAssets(), strings.Join(table.Tickers, ", "))

	dataset, err := frontier.Run(table, frontier.Params{
		NumSteps:    cfg.NumSteps,
		TradingDays: float64(cfg.TradingDays),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := dataset.WriteFile(cfg.OutputPath); err != nil {
		log.Fatal(err)
	}
	log.Printf("frontier: saved efficient frontier data to %s (%d portfolios, %d on frontier)",
		cfg.OutputPath, len(dataset.Weights), len(dataset.FrontierIndices))

	outDir := filepath.Dir(cfg.OutputPath)

	img, err := chart.MakeFrontierChart(dataset)
	if err != nil {
		log.Printf("chart: render failed: %v", err)
	} else {
		pngPath := filepath.Join(outDir, "efficient_frontier.png")
		if err := os.WriteFile(pngPath, img, 0o644); err != nil {
			log.Printf("chart: write failed: %v", err)
		} else {
			log.Printf("chart: saved %s", pngPath)
		}
	}

	if cfg.OpenAIKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		text, err := insight.NewCommentator(cfg.OpenAIKey).Comment(ctx, dataset)
		cancel()
		if err != nil {
			log.Printf("insight: %v", err)
		} else if err := os.WriteFile(filepath.Join(outDir, "commentary.md"), []byte(text+"\n"), 0o644); err != nil {
			log.Printf("insight: write failed: %v", err)
		} else {
			log.Printf("insight: saved commentary.md")
		}
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 && img != nil {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("telegram: %v", err)
		} else if err := tg.SendChart(dataset, img); err != nil {
			log.Printf("telegram: send failed: %v", err)
		} else {
			log.Printf("telegram: chart delivered to chat %d", cfg.TelegramChatID)
		}
	}

	if *serve {
		mux := server.NewHTTPMux(outDir)
		addr := ":" + cfg.Port
		log.Println("http: listening on", addr)
		if err := server.ListenAndServe(addr, mux); err != nil {
			log.Println("server error:", err)
			os.Exit(1)
		}
	}
}

// loadPrices resolves the input provider: an explicit CSV when configured,
// otherwise a live fetch with the sqlite cache as fallback.
func loadPrices(cfg config.Config) *prices.Table {
	if cfg.CSVPath != "" {
		table, err := prices.LoadCSV(cfg.CSVPath)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("prices: loaded %s", cfg.CSVPath)
		return table
	}

	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		log.Fatal(err)
	}
	store := storage.NewStore(db)

	table, err := prices.FetchTable(cfg.Tickers, cfg.FetchRange)
	if err != nil {
		log.Printf("fetch: %v; falling back to cache at %s", err, cfg.DBPath)
		table, err = store.LoadTable(cfg.Tickers)
		if err != nil {
			log.Fatal(err)
		}
		if table.NumRows() == 0 {
			log.Fatal("no cached prices available and fetch failed")
		}
		return table
	}
	if err := store.SaveTable(table); err != nil {
		log.Printf("cache: save failed: %v", err)
	}
	return table
}
