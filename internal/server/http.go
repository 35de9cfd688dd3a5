package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"frontierlab/internal/chart"
	"frontierlab/internal/frontier"
)

// NewHTTPMux serves the emitted dataset directory for the visualization
// front end, plus a rendered frontier chart and a health probe.
func NewHTTPMux(dataDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/data/", http.StripPrefix("/data/", http.FileServer(http.Dir(dataDir))))
	mux.HandleFunc("/chart.png", func(w http.ResponseWriter, _ *http.Request) {
		d, err := loadDataset(filepath.Join(dataDir, "efficient_frontier.json"))
		if err != nil {
			http.Error(w, "dataset not available: "+err.Error(), http.StatusNotFound)
			return
		}
		img, err := chart.MakeFrontierChart(d)
		if err != nil {
			http.Error(w, "chart failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	return mux
}

func ListenAndServe(addr string, mux *http.ServeMux) error {
	return http.ListenAndServe(addr, mux)
}

func loadDataset(path string) (*frontier.Dataset, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d frontier.Dataset
	if err := json.Unmarshal(buf, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
