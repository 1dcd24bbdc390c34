package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"tripcast/internal/api"
	"tripcast/internal/app"
	"tripcast/internal/forecast"
	"tripcast/internal/place"
)

type stubGeo struct {
	candidates []place.Candidate
	err        error
}

func (s stubGeo) Search(ctx context.Context, query string) ([]place.Candidate, error) {
	return s.candidates, s.err
}

type stubMeteo struct {
	samples []forecast.DailySample
	err     error
}

func (s stubMeteo) DailyWeek(ctx context.Context, coords place.Coordinates) ([]forecast.DailySample, error) {
	return s.samples, s.err
}

type stubAdvisor struct {
	text string
	err  error
}

func (s stubAdvisor) Advise(ctx context.Context, location string) (string, error) {
	return s.text, s.err
}

func testWeek() []forecast.DailySample {
	dates := []string{"2026-08-28", "2026-08-29", "2026-08-30", "2026-08-31", "2026-09-01", "2026-09-02", "2026-09-03"}
	samples := make([]forecast.DailySample, len(dates))
	for i, d := range dates {
		samples[i] = forecast.DailySample{Date: d, MaxTempC: 28, MeanHumidityPct: 60}
	}
	return samples
}

func manyCandidates(n int) []place.Candidate {
	out := make([]place.Candidate, n)
	for i := range out {
		out[i] = place.Candidate{Address: place.Address{
			City:    "Town" + strings.Repeat("x", i+1),
			Country: "Testland",
		}}
	}
	return out
}

func TestSuggestEndpoint(t *testing.T) {
	t.Parallel()

	a := &app.App{Geo: stubGeo{candidates: []place.Candidate{
		{Address: place.Address{City: "Paris", Country: "France"}, Lat: "48.85", Lon: "2.35"},
		{Address: place.Address{City: "Paris", State: "Texas", Country: "United States"}, Lat: "33.66", Lon: "-95.55"},
	}}}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/suggest?q=Paris", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp api.SuggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Suggestions) != 2 {
		t.Fatalf("suggestions = %v", resp.Suggestions)
	}
	if resp.Suggestions[0] != "Paris, France" {
		t.Errorf("first suggestion = %q", resp.Suggestions[0])
	}
	if resp.Coords == nil || resp.Coords.Lat != 48.85 {
		t.Errorf("coords = %+v", resp.Coords)
	}
}

func TestSuggestEndpointTruncatesForDisplay(t *testing.T) {
	t.Parallel()

	a := &app.App{Geo: stubGeo{candidates: manyCandidates(9)}}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/suggest?q=Town", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var resp api.SuggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Suggestions) != app.DisplaySuggestions {
		t.Errorf("got %d suggestions, want %d", len(resp.Suggestions), app.DisplaySuggestions)
	}
}

func TestSuggestEndpointShortQuery(t *testing.T) {
	t.Parallel()

	a := &app.App{Geo: stubGeo{err: errors.New("should not be called")}}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/suggest?q=ab", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp api.SuggestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", resp.Suggestions)
	}
}

func TestSuggestEndpointDegradesOnUpstreamError(t *testing.T) {
	t.Parallel()

	a := &app.App{Geo: stubGeo{err: errors.New("upstream down")}}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/suggest?q=Paris", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200 with empty list, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"suggestions":[]`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestForecastEndpoint(t *testing.T) {
	t.Parallel()

	a := &app.App{
		Meteo:   stubMeteo{samples: testWeek()},
		Advisor: stubAdvisor{text: "Carry sunscreen."},
	}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/forecast?lat=48.85&lon=2.35&place=Paris%2C+France", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp api.ForecastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.HasWeather {
		t.Fatal("expected weather in response")
	}
	if !strings.HasPrefix(resp.Temperature, "Expect warm day(s).") {
		t.Errorf("temperature = %q", resp.Temperature)
	}
	if resp.Advisory != "Carry sunscreen." {
		t.Errorf("advisory = %q", resp.Advisory)
	}
}

func TestForecastEndpointRequiresCoordinates(t *testing.T) {
	t.Parallel()

	a := &app.App{Meteo: stubMeteo{samples: testWeek()}}
	srv := api.NewServer(a, "8080")

	for _, target := range []string{
		"/api/forecast",
		"/api/forecast?lat=48.85",
		"/api/forecast?lat=0&lon=2.35",
		"/api/forecast?lat=abc&lon=2.35",
	} {
		req := httptest.NewRequest("GET", target, nil)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		if w.Code != 400 {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Please select a location first.") {
			t.Errorf("%s: body = %s", target, w.Body.String())
		}
	}
}

func TestForecastEndpointWeatherFailure(t *testing.T) {
	t.Parallel()

	a := &app.App{Meteo: stubMeteo{err: errors.New("upstream down")}}
	srv := api.NewServer(a, "8080")

	req := httptest.NewRequest("GET", "/api/forecast?lat=1&lon=1&place=Nowhere", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp api.ForecastResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.HasWeather || resp.Rain != "" {
		t.Errorf("expected degraded weather, got %+v", resp)
	}
	if resp.Advisory == "" {
		t.Error("expected fallback advisory text")
	}
}

func TestIndexPage(t *testing.T) {
	t.Parallel()

	srv := api.NewServer(&app.App{}, "8080")
	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "What's the weather?") {
		t.Error("expected page heading")
	}
	if !strings.Contains(body, "Where are you going?") {
		t.Error("expected search placeholder")
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := api.NewServer(&app.App{}, "8080")
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status"`) {
		t.Error("expected status field in JSON response")
	}
}
