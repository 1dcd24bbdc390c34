package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripcast/internal/app"
	"tripcast/internal/place"
)

type Server struct {
	app  *app.App
	port string
}

func NewServer(a *app.App, port string) *Server {
	return &Server{
		app:  a,
		port: port,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/suggest", s.handleSuggest)
	mux.HandleFunc("/api/forecast", s.handleForecast)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

type indexData struct {
	Debounce int // suggestion debounce interval in milliseconds
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "index.html", indexData{Debounce: int(app.DefaultDebounce.Milliseconds())}); err != nil {
		log.Printf("template error: %v", err)
	}
}

// SuggestResponse is what /api/suggest returns. Suggestions is already
// truncated for display; Coords belongs to the first raw geocoding result.
type SuggestResponse struct {
	Suggestions []string           `json:"suggestions"`
	Coords      *place.Coordinates `json:"coords,omitempty"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	resp := SuggestResponse{Suggestions: []string{}}

	res, err := s.app.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		// Degrade to an empty list; the search box stays usable.
		log.Printf("suggest: %v", err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	labels := res.Labels
	if len(labels) > app.DisplaySuggestions {
		labels = labels[:app.DisplaySuggestions]
	}
	resp.Suggestions = labels
	resp.Coords = res.Coords
	writeJSON(w, http.StatusOK, resp)
}

// ForecastResponse is what /api/forecast returns. When the weather fetch
// fails the three summary strings are empty and HasWeather is false; the
// advisory is always present.
type ForecastResponse struct {
	Rain        string `json:"rain"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
	HasWeather  bool   `json:"has_weather"`
	Advisory    string `json:"advisory"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var coords *place.Coordinates
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr == nil && lonErr == nil {
		coords = &place.Coordinates{Lat: lat, Lon: lon}
	}

	rep, err := s.app.Lookup(r.Context(), coords, q.Get("place"))
	if err != nil {
		// Precondition failure: surfaced synchronously, nothing fetched.
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": app.NoticeSelectLocation})
		return
	}

	writeJSON(w, http.StatusOK, ForecastResponse{
		Rain:        rep.Summary.Rain,
		Temperature: rep.Summary.Temperature,
		Humidity:    rep.Summary.Humidity,
		HasWeather:  rep.HasWeather,
		Advisory:    rep.Advisory,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"advisory_available": s.app.Advisor != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
