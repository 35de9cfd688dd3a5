package prices

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// yahooChartResp mirrors Yahoo v8 chart response (trimmed to needed fields)
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// yahooSparkResp mirrors Yahoo v7 spark fallback (trimmed)
type yahooSparkResp struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp []int64   `json:"timestamp"`
				Close     []float64 `json:"close"`
			} `json:"response"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"spark"`
}

// FetchDaily fetches daily close prices for a single symbol over a Yahoo
// range parameter such as "1y" or "2y". Timestamps are truncated to UTC
// calendar dates.
func FetchDaily(symbol string, rangeParam string) ([]time.Time, []float64, error) {
	ts, cl, err := fetchSeries(symbol, "1d", rangeParam)
	if err != nil {
		return nil, nil, err
	}
	dates := make([]time.Time, len(ts))
	for i, t := range ts {
		u := time.Unix(t, 0).UTC()
		dates[i] = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	}
	return dates, cl, nil
}

// FetchTable fetches daily closes for each ticker and aligns them on the
// union of trading dates, leaving NaN where a ticker has no close for a
// date. Ticker order is preserved. Symbols are fetched two at a time; any
// failed symbol fails the whole table.
func FetchTable(tickers []string, rangeParam string) (*Table, error) {
	type series struct {
		dates  []time.Time
		closes []float64
	}
	all := make([]series, len(tickers))
	var g errgroup.Group
	g.SetLimit(2)
	for i, sym := range tickers {
		i, sym := i, sym
		g.Go(func() error {
			dates, closes, err := FetchDaily(sym, rangeParam)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", sym, err)
			}
			if len(dates) == 0 {
				return fmt.Errorf("fetch %s: no data", sym)
			}
			all[i] = series{dates: dates, closes: closes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dateSet := map[time.Time]struct{}{}
	for _, s := range all {
		for _, d := range s.dates {
			dateSet[d] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	closes := make([][]float64, len(tickers))
	for i, s := range all {
		byDate := make(map[time.Time]float64, len(s.dates))
		for k, d := range s.dates {
			if k < len(s.closes) {
				byDate[d] = s.closes[k]
			}
		}
		col := make([]float64, len(dates))
		for k, d := range dates {
			if v, ok := byDate[d]; ok {
				col[k] = v
			} else {
				col[k] = math.NaN()
			}
		}
		closes[i] = col
	}

	return &Table{Dates: dates, Tickers: append([]string(nil), tickers...), Closes: closes}, nil
}

// fetchSeries fetches timestamps and close prices for a single symbol using
// the given interval and range, rotating hosts with backoff and falling back
// to the v7 spark endpoint.
func fetchSeries(symbol string, interval string, rangeParam string) ([]int64, []float64, error) {
	hosts := []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"}
	backoffs := []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second}
	var yc yahooChartResp
	var lastErr error
	for attempt := 0; attempt < len(backoffs)+1; attempt++ {
		for _, host := range hosts {
			url := fmt.Sprintf("https://%s/v8/finance/chart/%s?range=%s&interval=%s&events=div,splits", host, symbol, rangeParam, interval)
			body, err := getBody(url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(backoffs) {
			time.Sleep(backoffs[attempt])
		}
	}
	if lastErr != nil {
		// Spark fallback
		var sp yahooSparkResp
		for attempt := 0; attempt < len(backoffs)+1 && lastErr != nil; attempt++ {
			for _, host := range hosts {
				url := fmt.Sprintf("https://%s/v7/finance/spark?symbols=%s&range=%s&interval=%s", host, strings.ToUpper(symbol), rangeParam, interval)
				body, err := getBody(url, symbol)
				if err != nil {
					lastErr = err
					continue
				}
				if err := json.Unmarshal(body, &sp); err != nil {
					lastErr = fmt.Errorf("failed to parse yahoo spark json: %v", err)
					continue
				}
				if len(sp.Spark.Result) > 0 && len(sp.Spark.Result[0].Response) > 0 {
					ts := sp.Spark.Result[0].Response[0].Timestamp
					cl := sp.Spark.Result[0].Response[0].Close
					ts, cl = filterNonNegative(ts, cl)
					return ts, cl, nil
				}
			}
			if attempt < len(backoffs) {
				time.Sleep(backoffs[attempt])
			}
		}
		if lastErr != nil {
			return nil, nil, lastErr
		}
	}
	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil, errors.New("no data")
	}
	ts := yc.Chart.Result[0].Timestamp
	cl := yc.Chart.Result[0].Indicators.Quote[0].Close
	ts, cl = filterNonNegative(ts, cl)
	return ts, cl, nil
}

func getBody(url, symbol string) ([]byte, error) {
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s/chart", strings.ToUpper(symbol)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, fmt.Errorf("yahoo returned 429: Edge: Too Many Requests")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %d: %s", resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}
	return body, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

// filterNonNegative removes points where close < 0, keeping timestamp and value arrays aligned.
func filterNonNegative(ts []int64, cl []float64) ([]int64, []float64) {
	if len(ts) != len(cl) {
		n := len(ts)
		if len(cl) < n {
			n = len(cl)
		}
		ts = ts[:n]
		cl = cl[:n]
	}
	outTs := make([]int64, 0, len(ts))
	outCl := make([]float64, 0, len(cl))
	for i := 0; i < len(ts); i++ {
		if cl[i] < 0 {
			continue
		}
		outTs = append(outTs, ts[i])
		outCl = append(outCl, cl[i])
	}
	return outTs, outCl
}
