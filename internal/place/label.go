package place

import (
	"math"
	"strconv"
	"strings"
)

// Address is the structured address block of a geocoding result. Nominatim
// populates whichever of these fit the place; the rest decode as empty.
type Address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Municipality string `json:"municipality"`
	County       string `json:"county"`
	State        string `json:"state"`
	Region       string `json:"region"`
	Country      string `json:"country"`
}

// Candidate is one raw geocoding search result. Nominatim returns lat/lon
// as strings.
type Candidate struct {
	Address     Address `json:"address"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
}

// Coordinates is a resolved position. A pair is only ever constructed with
// both fields finite.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinates parses the candidate's position. ok is false unless both
// fields parse as finite numbers.
func (c Candidate) Coordinates() (Coordinates, bool) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(c.Lat), 64)
	lon, lonErr := strconv.ParseFloat(strings.TrimSpace(c.Lon), 64)
	if latErr != nil || lonErr != nil {
		return Coordinates{}, false
	}
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lon: lon}, true
}

// FormatLabel reduces a candidate to a short human-readable label. Each
// logical field is resolved once up front, then the first matching rule of
// the cascade wins.
func FormatLabel(c Candidate) string {
	city := firstNonEmpty(c.Address.City, c.Address.Town, c.Address.Village, c.Address.Hamlet, c.Address.Municipality)
	state := firstNonEmpty(c.Address.State, c.Address.Region)
	county := c.Address.County
	country := c.Address.Country

	switch {
	case city != "" && state != "":
		return withCountry(city+", "+state, country)
	case city != "" && country != "":
		return city + ", " + country
	case city != "" && county != "":
		return withCountry(city+", "+county, country)
	case state != "" && country != "":
		return state + ", " + country
	case county != "" && country != "":
		return county + ", " + country
	}

	if c.DisplayName != "" {
		segments := splitDisplayName(c.DisplayName)
		if len(segments) > 3 {
			segments = segments[:3]
		}
		return strings.Join(segments, ", ")
	}

	if c.Type != "" {
		return c.Type
	}
	return "Unknown place"
}

func withCountry(label, country string) string {
	if country == "" {
		return label
	}
	return label + ", " + country
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitDisplayName(name string) []string {
	parts := strings.Split(name, ",")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			segments = append(segments, t)
		}
	}
	return segments
}
