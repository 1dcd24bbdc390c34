package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"tripcast/internal/advisory"
	"tripcast/internal/forecast"
	"tripcast/internal/metrics"
	"tripcast/internal/place"
)

// MaxSuggestions caps the deduplicated suggestion list; DisplaySuggestions
// is how many of those the UI shows.
const (
	MaxSuggestions     = 10
	DisplaySuggestions = 5
)

// ErrNoLocation is returned when a weather search is attempted before a
// location with resolved coordinates has been selected.
var ErrNoLocation = errors.New("no location selected")

// Geocoder resolves a normalized query to raw place candidates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]place.Candidate, error)
}

// ForecastProvider returns the 7-day daily forecast for a coordinate pair.
type ForecastProvider interface {
	DailyWeek(ctx context.Context, coords place.Coordinates) ([]forecast.DailySample, error)
}

// Advisor produces a free-text travel advisory for a place.
type Advisor interface {
	Advise(ctx context.Context, location string) (string, error)
}

// App wires the suggestion pipeline and the weather+advisory flow together.
// A nil Advisor means advisories are disabled and the fallback message is
// used.
type App struct {
	Geo     Geocoder
	Meteo   ForecastProvider
	Advisor Advisor
}

// Suggestions is the outcome of one suggestion fetch. Coords carries the
// first raw candidate's position when it parses, independent of dedup.
type Suggestions struct {
	Labels []string           `json:"suggestions"`
	Coords *place.Coordinates `json:"coords,omitempty"`
}

// Suggest runs input through the pipeline: length gate, normalization,
// geocoding, label formatting, deduplication, truncation. Input that is too
// short yields an empty result without touching the network.
func (a *App) Suggest(ctx context.Context, input string) (Suggestions, error) {
	trimmed := strings.TrimSpace(input)
	if utf8.RuneCountInString(trimmed) < place.MinQueryLen {
		metrics.SuggestionQueries.WithLabelValues("skipped_short").Inc()
		return Suggestions{}, nil
	}
	normalized := place.NormalizeQuery(input)
	if utf8.RuneCountInString(normalized) < place.MinQueryLen {
		metrics.SuggestionQueries.WithLabelValues("skipped_short").Inc()
		return Suggestions{}, nil
	}

	candidates, err := a.Geo.Search(ctx, normalized)
	if err != nil {
		metrics.SuggestionQueries.WithLabelValues("error").Inc()
		return Suggestions{}, err
	}
	metrics.SuggestionQueries.WithLabelValues("served").Inc()

	var out Suggestions
	if len(candidates) > 0 {
		if coords, ok := candidates[0].Coordinates(); ok {
			out.Coords = &coords
		}
	}

	labels := make([]string, 0, len(candidates))
	for _, c := range candidates {
		labels = append(labels, place.FormatLabel(c))
	}
	labels = place.Deduplicate(labels)
	if len(labels) > MaxSuggestions {
		labels = labels[:MaxSuggestions]
	}
	out.Labels = labels
	return out, nil
}

// Report is the outcome of one weather search. When the forecast fetch
// fails, HasWeather is false and the summary strings are empty; the
// advisory is always populated, with the fallback text when the advisory
// service fails or is disabled.
type Report struct {
	Summary    forecast.Summary
	HasWeather bool
	Advisory   string
}

// Lookup runs the weather and advisory fetches for the selected location.
// The coordinate precondition is checked before any network call: nil or
// zero-valued pairs abort with ErrNoLocation. The two fetches run as
// independent tasks with their own error boundaries; one failing never
// halts the other.
func (a *App) Lookup(ctx context.Context, coords *place.Coordinates, label string) (Report, error) {
	if coords == nil || coords.Lat == 0 || coords.Lon == 0 {
		return Report{}, ErrNoLocation
	}

	var rep Report
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		samples, err := a.Meteo.DailyWeek(ctx, *coords)
		if err != nil {
			log.Printf("weather: %v", err)
			return
		}
		summary, err := forecast.Summarize(samples)
		if err != nil {
			log.Printf("weather: %v", err)
			return
		}
		rep.Summary = summary
		rep.HasWeather = true
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		rep.Advisory = advisory.Unavailable
		if a.Advisor == nil {
			return
		}
		text, err := a.Advisor.Advise(ctx, label)
		if err != nil {
			log.Printf("advisory: %v", err)
			return
		}
		rep.Advisory = text
	}()

	wg.Wait()
	return rep, nil
}
