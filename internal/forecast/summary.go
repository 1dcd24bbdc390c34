package forecast

import (
	"fmt"
	"math"
	"strings"
)

// Days is the length of the forecast window. The upstream request and the
// summarizer both assume exactly one week.
const Days = 7

const (
	// rainyDayMm is the daily precipitation at which a day counts as rainy.
	rainyDayMm = 2.5
	// warmAvgC is the weekly average maximum above which the week reads as
	// warm (~80°F).
	warmAvgC = 26.6
	// humidAvgPct is the weekly average humidity above which the week reads
	// as humid.
	humidAvgPct = 50.0
)

// DailySample is one calendar day's aggregated readings from the daily
// forecast feed. Date is an ISO 8601 calendar date.
type DailySample struct {
	Date            string  `json:"date"`
	PrecipitationMm float64 `json:"precipitation_mm"`
	MaxTempC        float64 `json:"max_temp_c"`
	MeanHumidityPct float64 `json:"mean_humidity_pct"`
}

// Summary holds the three derived forecast strings. They are independent of
// each other and recomputed from scratch on every search.
type Summary struct {
	Rain        string `json:"rain"`
	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`
}

// Summarize reduces a week of daily samples to the rain, temperature and
// humidity summary strings. It rejects anything other than exactly 7
// samples with finite readings.
func Summarize(samples []DailySample) (Summary, error) {
	if len(samples) != Days {
		return Summary{}, fmt.Errorf("summarize: want %d daily samples, got %d", Days, len(samples))
	}
	for _, s := range samples {
		if !finite(s.PrecipitationMm) || !finite(s.MaxTempC) || !finite(s.MeanHumidityPct) {
			return Summary{}, fmt.Errorf("summarize: non-finite reading on %s", s.Date)
		}
	}

	return Summary{
		Rain:        rainSummary(samples),
		Temperature: temperatureSummary(samples),
		Humidity:    humiditySummary(samples),
	}, nil
}

func rainSummary(samples []DailySample) string {
	var rainyDates []string
	for _, s := range samples {
		if s.PrecipitationMm >= rainyDayMm {
			rainyDates = append(rainyDates, s.Date)
		}
	}

	headline := "Expect dry day(s)."
	if len(rainyDates) > 3 {
		headline = "Expect rainy day(s)."
	}

	if len(rainyDates) == 0 {
		return headline + " No relevant rain is expected for the week."
	}
	return headline + " It is expected to rain on: " + strings.Join(rainyDates, ", ") + "."
}

func temperatureSummary(samples []DailySample) string {
	sum := 0.0
	for _, s := range samples {
		sum += s.MaxTempC
	}
	avg := sum / float64(len(samples))

	kind := "cool"
	if avg > warmAvgC {
		kind = "warm"
	}
	return fmt.Sprintf("Expect %s day(s). Average temperature: %.1f°C (%.1f°F).", kind, avg, avg*1.8+32)
}

func humiditySummary(samples []DailySample) string {
	sum := 0.0
	for _, s := range samples {
		sum += s.MeanHumidityPct
	}
	avg := sum / float64(len(samples))

	kind := "dry"
	if avg > humidAvgPct {
		kind = "humid"
	}
	return fmt.Sprintf("Expect %s day(s). Average humidity: %.0f%%.", kind, avg)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
