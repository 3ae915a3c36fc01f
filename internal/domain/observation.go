package domain

import "context"

// ConditionCategory is the closed vocabulary bucket derived from the
// provider's free-text condition.
type ConditionCategory string

const (
	ConditionClear        ConditionCategory = "clear"
	ConditionClouds       ConditionCategory = "clouds"
	ConditionRain         ConditionCategory = "rain"
	ConditionDrizzle      ConditionCategory = "drizzle"
	ConditionThunderstorm ConditionCategory = "thunderstorm"
	ConditionOther        ConditionCategory = "other"
)

// Observation is the normalized snapshot of current conditions for one beach
// at one instant. Values are kept at full precision; rounding happens only
// when the display record is built. Constructed once per request, immutable
// after that.
type Observation struct {
	AirTempF             float64
	FeelsLikeF           float64
	HumidityPct          int
	WindSpeedMph         float64
	WindGustMph          *float64 // nil when the provider omits gust
	WindDirectionDeg     float64
	Category             ConditionCategory
	ConditionText        string // provider's short keyword, display only
	ConditionDescription string // provider's free text, display only
	VisibilityMiles      float64
	PressureHpa          float64
	CloudCoverPct        int
	LocalHour            int // 0-23 at evaluation time, feeds the UV advisory
}

// ObservationSource fetches the raw current-conditions payload for a
// coordinate pair. Implementations live in the adapter layer; retry and
// timeout policy is theirs, not the engine's.
type ObservationSource interface {
	CurrentConditions(ctx context.Context, lat, lon float64) ([]byte, error)
}
