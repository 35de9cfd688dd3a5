package storage

import (
	"database/sql"
	"math"
	"sort"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"frontierlab/internal/prices"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

// Store caches fetched daily closes so a run can proceed when the price
// provider is unreachable.
type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS closes(
		ticker TEXT NOT NULL, date TEXT NOT NULL, close REAL,
		PRIMARY KEY(ticker, date)
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

const dateLayout = "2006-01-02"

// SaveTable upserts every defined cell of the table. NaN cells are skipped,
// never stored.
func (s *Store) SaveTable(t *prices.Table) error {
	for c, ticker := range t.Tickers {
		for i, d := range t.Dates {
			v := t.Closes[c][i]
			if math.IsNaN(v) {
				continue
			}
			_, err := s.db.Exec(`INSERT INTO closes(ticker,date,close) VALUES(?,?,?)
				ON CONFLICT(ticker,date) DO UPDATE SET close=excluded.close`,
				ticker, d.Format(dateLayout), v)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadTable rebuilds a price table for the given tickers from the cache,
// aligned on the union of cached dates with NaN where a ticker has no close.
// Ticker order is preserved.
func (s *Store) LoadTable(tickers []string) (*prices.Table, error) {
	byTicker := make(map[string]map[string]float64, len(tickers))
	dateSet := map[string]struct{}{}
	for _, ticker := range tickers {
		rows, err := s.db.Query(`SELECT date, close FROM closes WHERE ticker=? ORDER BY date ASC`, ticker)
		if err != nil {
			return nil, err
		}
		series := map[string]float64{}
		for rows.Next() {
			var d string
			var v float64
			if err := rows.Scan(&d, &v); err != nil {
				rows.Close()
				return nil, err
			}
			series[d] = v
			dateSet[d] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
		byTicker[ticker] = series
	}

	keys := make([]string, 0, len(dateSet))
	for d := range dateSet {
		keys = append(keys, d)
	}
	// ISO dates sort correctly as strings.
	sort.Strings(keys)

	dates := make([]time.Time, len(keys))
	for i, k := range keys {
		d, err := time.Parse(dateLayout, k)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}

	closes := make([][]float64, len(tickers))
	for c, ticker := range tickers {
		col := make([]float64, len(keys))
		for i, k := range keys {
			if v, ok := byTicker[ticker][k]; ok {
				col[i] = v
			} else {
				col[i] = math.NaN()
			}
		}
		closes[c] = col
	}

	return &prices.Table{Dates: dates, Tickers: append([]string(nil), tickers...), Closes: closes}, nil
}
