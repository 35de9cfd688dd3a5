package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Tickers        []string
	CSVPath        string
	OutputPath     string
	DBPath         string
	NumSteps       int
	TradingDays    int
	FetchRange     string
	Port           string
	TelegramToken  string
	TelegramChatID int64
	OpenAIKey      string
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", k, err)
	}
	return n
}

func Load() Config {
	tickers := strings.Split(envOr("TICKERS", "SPY,TLT,GLD"), ",")
	for i := range tickers {
		tickers[i] = strings.ToUpper(strings.TrimSpace(tickers[i]))
	}
	if len(tickers) != 3 {
		log.Fatalf("TICKERS must name exactly 3 assets, got %d", len(tickers))
	}

	var chatID int64
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("invalid TELEGRAM_CHAT_ID: %v", err)
		}
		chatID = id
	}

	return Config{
		Tickers:        tickers,
		CSVPath:        os.Getenv("CSV_PATH"),
		OutputPath:     envOr("OUTPUT_PATH", "web/data/efficient_frontier.json"),
		DBPath:         envOr("DB_PATH", "data/prices.db"),
		NumSteps:       envInt("NUM_STEPS", 101),
		TradingDays:    envInt("TRADING_DAYS", 252),
		FetchRange:     envOr("FETCH_RANGE", "1y"),
		Port:           envOr("PORT", "9095"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID: chatID,
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
	}
}
