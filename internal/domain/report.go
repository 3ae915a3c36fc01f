package domain

import (
	"math"
	"time"
)

// WeatherSummary carries the rounded display values of an observation.
// Classification never reads from this record; it works on the raw
// Observation so rounding cannot shift a value across a rule threshold.
type WeatherSummary struct {
	TemperatureF     int     `json:"temperature_f"`
	FeelsLikeF       int     `json:"feels_like_f"`
	HumidityPct      int     `json:"humidity_pct"`
	WindSpeedMph     int     `json:"wind_speed_mph"`
	WindGustMph      *int    `json:"wind_gust_mph,omitempty"`
	WindDirectionDeg int     `json:"wind_direction_deg"`
	Condition        string  `json:"condition"`
	Description      string  `json:"description"`
	VisibilityMiles  float64 `json:"visibility_miles"` // one decimal place
	PressureHpa      float64 `json:"pressure_hpa"`
	CloudCoverPct    int     `json:"cloud_cover_pct"`
}

// SafetySummary is the classification result as presented to the caller.
type SafetySummary struct {
	Verdict         Verdict  `json:"verdict"`
	Recommendations []string `json:"recommendations"`
	UVAdvisory      *string  `json:"uv_advisory,omitempty"`
}

// SafetyReport is the engine's structured output for one beach at one instant.
type SafetyReport struct {
	Beach       string         `json:"beach"`
	BeachKey    string         `json:"beach_key"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	Weather     WeatherSummary `json:"weather"`
	Safety      SafetySummary  `json:"safety"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// BuildReport assembles the final report from a resolved beach, its
// normalized observation, and the classifier's assessment. The generation
// timestamp comes from the package clock in UTC.
func BuildReport(entry LocationEntry, o Observation, a Assessment) SafetyReport {
	w := WeatherSummary{
		TemperatureF:     roundToInt(o.AirTempF),
		FeelsLikeF:       roundToInt(o.FeelsLikeF),
		HumidityPct:      o.HumidityPct,
		WindSpeedMph:     roundToInt(o.WindSpeedMph),
		WindDirectionDeg: roundToInt(o.WindDirectionDeg),
		Condition:        o.ConditionText,
		Description:      o.ConditionDescription,
		VisibilityMiles:  roundToTenth(o.VisibilityMiles),
		PressureHpa:      o.PressureHpa,
		CloudCoverPct:    o.CloudCoverPct,
	}
	if o.WindGustMph != nil {
		g := roundToInt(*o.WindGustMph)
		w.WindGustMph = &g
	}

	s := SafetySummary{
		Verdict:         a.Verdict,
		Recommendations: a.Recommendations,
		UVAdvisory:      a.UVAdvisory,
	}

	return SafetyReport{
		Beach:       entry.DisplayName,
		BeachKey:    entry.Key,
		Latitude:    entry.Latitude,
		Longitude:   entry.Longitude,
		Weather:     w,
		Safety:      s,
		GeneratedAt: clock.Now().UTC(),
	}
}

func roundToInt(v float64) int { return int(math.Round(v)) }

func roundToTenth(v float64) float64 { return math.Round(v*10) / 10 }
