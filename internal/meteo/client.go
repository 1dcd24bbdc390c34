package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tripcast/internal/forecast"
	"tripcast/internal/httputil"
	"tripcast/internal/metrics"
	"tripcast/internal/place"
)

// API docs: https://open-meteo.com/en/docs
const defaultBaseURL = "https://api.open-meteo.com"

const dailyVars = "precipitation_sum,temperature_2m_max,relative_humidity_2m_mean"

// Client fetches daily forecasts from Open-Meteo.
type Client struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewClient creates a forecast client. An empty baseURL selects the public
// Open-Meteo API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  httputil.NewClient(),
		now:     time.Now,
	}
}

type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		HumidityMean     []float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

// DateRange returns the ISO calendar dates spanning the forecast week: day 0
// is today on the given clock, day 6 closes the window.
func DateRange(now time.Time) (start, end string) {
	start = now.Format("2006-01-02")
	end = now.AddDate(0, 0, forecast.Days-1).Format("2006-01-02")
	return start, end
}

// DailyWeek fetches the 7-day daily forecast for the coordinates, starting
// today on the caller's local clock. The response shape is validated here so
// the summarizer only ever sees exactly one week of parallel readings.
func (c *Client) DailyWeek(ctx context.Context, coords place.Coordinates) ([]forecast.DailySample, error) {
	u, err := url.Parse(c.baseURL + "/v1/forecast")
	if err != nil {
		return nil, fmt.Errorf("forecast: parse base URL: %w", err)
	}

	startDate, endDate := DateRange(c.now())

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	q.Set("daily", dailyVars)
	q.Set("timezone", "auto")
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	u.RawQuery = q.Encode()

	req, err := httputil.NewGet(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("forecast: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("forecast: fetch: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamLatency.WithLabelValues("forecast").Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamCallsTotal.WithLabelValues("forecast", strconv.Itoa(resp.StatusCode)).Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("forecast: status %d: %s", resp.StatusCode, string(body))
	}
	metrics.UpstreamCallsTotal.WithLabelValues("forecast", "ok").Inc()

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("forecast: decode: %w", err)
	}

	d := data.Daily
	if len(d.Time) != forecast.Days || len(d.PrecipitationSum) != forecast.Days ||
		len(d.TemperatureMax) != forecast.Days || len(d.HumidityMean) != forecast.Days {
		return nil, fmt.Errorf("forecast: malformed daily block: time=%d precip=%d temp=%d humidity=%d, want %d each",
			len(d.Time), len(d.PrecipitationSum), len(d.TemperatureMax), len(d.HumidityMean), forecast.Days)
	}

	samples := make([]forecast.DailySample, forecast.Days)
	for i := range samples {
		samples[i] = forecast.DailySample{
			Date:            d.Time[i],
			PrecipitationMm: d.PrecipitationSum[i],
			MaxTempC:        d.TemperatureMax[i],
			MeanHumidityPct: d.HumidityMean[i],
		}
	}
	return samples, nil
}
