package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

const metersPerMile = 1609.34

// providerPayload mirrors the subset of the OpenWeatherMap current weather
// response the engine reads. Pointer fields distinguish "absent" from a zero
// value so required-field validation can name exactly what is missing.
type providerPayload struct {
	Weather []struct {
		Main        *string `json:"main"`
		Description *string `json:"description"`
	} `json:"weather"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		Humidity  *int     `json:"humidity"`
		Pressure  *float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind"`
	Visibility *float64 `json:"visibility"` // meters
	Clouds     *struct {
		All *int `json:"all"`
	} `json:"clouds"`
}

// NormalizeObservation reduces one raw provider payload to the engine's
// internal observation record. localHour is the hour of day (0-23) at
// evaluation time in the beach's timezone; it is supplied by the caller's
// clock, not by the payload. Any structurally missing required field fails
// with a MalformedPayloadError naming the field.
func NormalizeObservation(payload []byte, localHour int) (Observation, error) {
	if len(payload) == 0 {
		return Observation{}, &MalformedPayloadError{Field: "payload"}
	}

	var p providerPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Observation{}, fmt.Errorf("decode observation payload: %w", err)
	}

	if field, ok := missingField(p); ok {
		return Observation{}, &MalformedPayloadError{Field: field}
	}

	cond := p.Weather[0]
	obs := Observation{
		AirTempF:             *p.Main.Temp,
		FeelsLikeF:           *p.Main.FeelsLike,
		HumidityPct:          *p.Main.Humidity,
		WindSpeedMph:         *p.Wind.Speed,
		WindDirectionDeg:     *p.Wind.Deg,
		Category:             DeriveConditionCategory(*cond.Main),
		ConditionText:        *cond.Main,
		ConditionDescription: *cond.Description,
		VisibilityMiles:      *p.Visibility / metersPerMile,
		PressureHpa:          *p.Main.Pressure,
		CloudCoverPct:        *p.Clouds.All,
		LocalHour:            localHour,
	}
	if p.Wind.Gust != nil {
		gust := *p.Wind.Gust
		obs.WindGustMph = &gust
	}
	return obs, nil
}

// missingField returns the name of the first absent required field, checked
// in a stable order so repeated failures report consistently.
func missingField(p providerPayload) (string, bool) {
	switch {
	case len(p.Weather) == 0:
		return "weather", true
	case p.Weather[0].Main == nil:
		return "weather[0].main", true
	case p.Weather[0].Description == nil:
		return "weather[0].description", true
	case p.Main == nil:
		return "main", true
	case p.Main.Temp == nil:
		return "main.temp", true
	case p.Main.FeelsLike == nil:
		return "main.feels_like", true
	case p.Main.Humidity == nil:
		return "main.humidity", true
	case p.Main.Pressure == nil:
		return "main.pressure", true
	case p.Wind == nil:
		return "wind", true
	case p.Wind.Speed == nil:
		return "wind.speed", true
	case p.Wind.Deg == nil:
		return "wind.deg", true
	case p.Visibility == nil:
		return "visibility", true
	case p.Clouds == nil || p.Clouds.All == nil:
		return "clouds.all", true
	}
	return "", false
}

// conditionPriority fixes the substring-match order. Thunderstorm outranks
// rain, which outranks drizzle, so mixed text like "light rain showers" or
// "thunderstorm with drizzle" buckets to the most significant cue.
var conditionPriority = []ConditionCategory{
	ConditionThunderstorm,
	ConditionRain,
	ConditionDrizzle,
	ConditionClouds,
	ConditionClear,
}

// DeriveConditionCategory buckets the provider's free-text condition into the
// closed vocabulary by case-insensitive substring match.
func DeriveConditionCategory(text string) ConditionCategory {
	lower := strings.ToLower(text)
	for _, c := range conditionPriority {
		if strings.Contains(lower, string(c)) {
			return c
		}
	}
	return ConditionOther
}
