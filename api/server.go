package api

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/export"
)

// Api serves the results of an interpolation run over HTTP.
type Api struct {
	mu       sync.RWMutex
	timeline *annotate.Timeline
}

// NewApi creates an Api with no Timeline loaded.
func NewApi() *Api {
	a := new(Api)
	return a
}

// SetTimeline publishes tl to the handlers.
func (a *Api) SetTimeline(tl *annotate.Timeline) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeline = tl
}

func (a *Api) current(w http.ResponseWriter) *annotate.Timeline {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.timeline == nil {
		http.Error(w, "no timeline", http.StatusServiceUnavailable)
	}
	return a.timeline
}

// Handler routes the Api endpoints.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/timeline", a.handleTimeline)
	mux.HandleFunc("/summary", a.handleSummary)
	mux.HandleFunc("/annotations.csv", a.handleCSV)
	mux.HandleFunc("/chart", a.handleChart)
	return mux
}

func (a *Api) handleTimeline(w http.ResponseWriter, r *http.Request) {
	tl := a.current(w)
	if tl == nil {
		return
	}
	writeJSON(w, tl)
}

func (a *Api) handleSummary(w http.ResponseWriter, r *http.Request) {
	tl := a.current(w)
	if tl == nil {
		return
	}
	writeJSON(w, export.Summarise(tl))
}

func (a *Api) handleCSV(w http.ResponseWriter, r *http.Request) {
	tl := a.current(w)
	if tl == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, tl); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Write(buf.Bytes())
}

func (a *Api) handleChart(w http.ResponseWriter, r *http.Request) {
	tl := a.current(w)
	if tl == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.Chart(&buf, tl); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	log.Printf("Listening on %s...", addr)
	return http.ListenAndServe(addr, a.Handler())
}
