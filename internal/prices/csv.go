package prices

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// LoadCSV reads a price history CSV with the three-row header layout the
// input provider writes:
//
//	Price,Close,Close,Close,High,...
//	Ticker,GLD,SPY,TLT,GLD,...
//	Date,,,,,...
//	2024-01-02,190.21,472.65,98.88,...
//
// Only the Close field is kept; the other field-level labels are discarded
// and columns are reduced to ticker names. Empty cells become NaN. Rows are
// sorted by ascending date.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &SchemaError{Reason: err.Error()}
	}
	if len(records) < 4 {
		return nil, &SchemaError{Reason: "need three header rows and at least one data row"}
	}

	fields, tickRow, dateRow := records[0], records[1], records[2]
	if strings.TrimSpace(dateRow[0]) != "Date" {
		return nil, &SchemaError{Reason: fmt.Sprintf("third header row must start with Date, got %q", dateRow[0])}
	}

	// Pick out the Close columns and their tickers.
	var cols []int
	var tickers []string
	for j := 1; j < len(fields); j++ {
		if strings.TrimSpace(fields[j]) != "Close" {
			continue
		}
		if j >= len(tickRow) {
			return nil, &SchemaError{Reason: fmt.Sprintf("column %d has no ticker label", j)}
		}
		cols = append(cols, j)
		tickers = append(tickers, strings.TrimSpace(tickRow[j]))
	}
	if len(cols) == 0 {
		return nil, &SchemaError{Reason: "no Close columns present"}
	}

	data := records[3:]
	dates := make([]time.Time, 0, len(data))
	closes := make([][]float64, len(cols))
	for i := range closes {
		closes[i] = make([]float64, 0, len(data))
	}

	for i, rec := range data {
		line := i + 4
		d, err := time.Parse(dateLayout, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, &ParseError{Line: line, Field: "date", Value: rec[0], Err: err}
		}
		dates = append(dates, d)
		for k, j := range cols {
			if j >= len(rec) || strings.TrimSpace(rec[j]) == "" {
				closes[k] = append(closes[k], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[j]), 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: tickers[k] + " close", Value: rec[j], Err: err}
			}
			closes[k] = append(closes[k], v)
		}
	}

	t := &Table{Dates: dates, Tickers: tickers, Closes: closes}
	t.sortByDate()
	return t, nil
}

func (t *Table) sortByDate() {
	idx := make([]int, len(t.Dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return t.Dates[idx[a]].Before(t.Dates[idx[b]]) })

	dates := make([]time.Time, len(idx))
	for i, j := range idx {
		dates[i] = t.Dates[j]
	}
	t.Dates = dates
	for c := range t.Closes {
		col := make([]float64, len(idx))
		for i, j := range idx {
			col[i] = t.Closes[c][j]
		}
		t.Closes[c] = col
	}
}
