package domain

import "fmt"

// Verdict is the headline swimming-safety classification, ordered from
// safest to most severe.
type Verdict int

const (
	VerdictGood Verdict = iota
	VerdictCaution
	VerdictPoor
	VerdictDangerous
)

func (v Verdict) String() string {
	switch v {
	case VerdictCaution:
		return "CAUTION"
	case VerdictPoor:
		return "POOR"
	case VerdictDangerous:
		return "DANGEROUS"
	default:
		return "GOOD"
	}
}

// MarshalText renders the verdict as its tier name in JSON output.
func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText parses a tier name back to its constant, so consumers can
// decode a published SafetyReport. Unknown text is an error rather than a
// silent GOOD.
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "GOOD":
		*v = VerdictGood
	case "CAUTION":
		*v = VerdictCaution
	case "POOR":
		*v = VerdictPoor
	case "DANGEROUS":
		*v = VerdictDangerous
	default:
		return fmt.Errorf("unknown verdict %q", text)
	}
	return nil
}

// Assessment is the classifier's output: the verdict, the ordered advisory
// list (never empty), and an optional UV advisory. Nil means no advisory,
// distinct from an empty string.
type Assessment struct {
	Verdict         Verdict
	Recommendations []string
	UVAdvisory      *string
}

// lowVisibilityMiles is 1000 m expressed in miles, the threshold below which
// conditions are hazardous for open-water swimming.
const lowVisibilityMiles = 0.62

// severityRules is the ordered severity table. Every rule is evaluated
// independently; the verdict is the most severe tier among those that
// matched, not the first match.
var severityRules = []struct {
	tier    Verdict
	applies func(Observation) bool
}{
	{VerdictDangerous, func(o Observation) bool { return o.Category == ConditionThunderstorm }},
	{VerdictPoor, func(o Observation) bool { return o.WindSpeedMph > 15 }},
	{VerdictPoor, func(o Observation) bool { return o.AirTempF < 60 }},
	{VerdictPoor, func(o Observation) bool { return o.Category == ConditionRain }},
	{VerdictPoor, func(o Observation) bool { return o.VisibilityMiles < lowVisibilityMiles }},
	{VerdictCaution, func(o Observation) bool { return o.WindSpeedMph > 10 }},
	{VerdictCaution, func(o Observation) bool { return o.AirTempF < 70 }},
	{VerdictCaution, func(o Observation) bool { return o.Category == ConditionDrizzle }},
	{VerdictCaution, func(o Observation) bool { return o.CloudCoverPct > 80 }},
}

// Advisory groups. Rules sharing a nonzero group are mutually exclusive:
// the first matching rule in the group wins and the rest are skipped.
const (
	groupNone = iota
	groupWind
	groupCold
	groupHeat
)

// advisoryRules is the ordered recommendation table. Output order always
// follows table order, so identical observations produce identical lists.
var advisoryRules = []struct {
	group   int
	text    string
	applies func(Observation) bool
}{
	{groupNone,
		"Always swim near a lifeguard and obey posted flags. Lifeguards are typically on duty 10am-6pm during beach season.",
		func(Observation) bool { return true }},
	{groupNone,
		"Thunderstorm activity: exit the water immediately and seek shelter away from the beach.",
		func(o Observation) bool { return o.Category == ConditionThunderstorm }},
	{groupNone,
		"Rain reduces visibility and can wash pollutants into the water. Swim with caution.",
		func(o Observation) bool { return o.Category == ConditionRain }},
	{groupWind,
		"Severe wind gusts: dangerous conditions for swimmers and small craft.",
		func(o Observation) bool { return o.WindGustMph != nil && *o.WindGustMph > 20 }},
	{groupWind,
		"Strong sustained winds: high rip current risk. Extreme caution advised.",
		func(o Observation) bool { return o.WindSpeedMph > 15 }},
	{groupWind,
		"Moderate winds: expect choppy water and be alert for currents.",
		func(o Observation) bool { return o.WindSpeedMph > 10 }},
	{groupCold,
		"Cold conditions: hypothermia risk in the water. Limit time in and watch for shivering.",
		func(o Observation) bool { return o.AirTempF < 65 }},
	{groupCold,
		"Cool water likely. A wetsuit is recommended for longer swims.",
		func(o Observation) bool { return o.AirTempF < 75 }},
	{groupHeat,
		"Extreme heat: take frequent breaks in shade and limit midday sun exposure.",
		func(o Observation) bool { return o.FeelsLikeF > 90 }},
	{groupHeat,
		"High heat: reapply sunscreen often and stay hydrated.",
		func(o Observation) bool { return o.FeelsLikeF > 85 }},
	{groupNone,
		"Low visibility: stay close to shore and within sight of a lifeguard.",
		func(o Observation) bool { return o.VisibilityMiles < lowVisibilityMiles }},
	{groupNone,
		"High heat and humidity: watch for signs of heat exhaustion.",
		func(o Observation) bool { return o.HumidityPct > 80 && o.AirTempF > 80 }},
	{groupNone,
		"Excellent conditions for a beach day. Enjoy the water!",
		func(o Observation) bool {
			return o.Category == ConditionClear && o.AirTempF > 75 && o.WindSpeedMph < 10
		}},
}

// Classify derives the safety verdict, the ordered recommendation list, and
// the optional UV advisory for one observation. Pure function: no side
// effects, deterministic for identical inputs, never fails for values within
// the documented ranges.
func Classify(o Observation) Assessment {
	verdict := VerdictGood
	for _, r := range severityRules {
		if r.applies(o) && r.tier > verdict {
			verdict = r.tier
		}
	}

	recs := make([]string, 0, 8)
	fired := make(map[int]bool, 3)
	for _, r := range advisoryRules {
		if r.group != groupNone && fired[r.group] {
			continue
		}
		if !r.applies(o) {
			continue
		}
		if r.group != groupNone {
			fired[r.group] = true
		}
		recs = append(recs, r.text)
	}

	return Assessment{
		Verdict:         verdict,
		Recommendations: recs,
		UVAdvisory:      deriveUVAdvisory(o),
	}
}

// UV advisory texts, independent of the swimming verdict.
const (
	uvHighAdvisory     = "High UV exposure expected: use SPF 30+ sunscreen and reapply after swimming."
	uvModerateAdvisory = "Moderate UV exposure: sunscreen recommended."
)

// deriveUVAdvisory returns a sun-exposure advisory for midday hours with
// little cloud cover, or nil when no advisory applies.
func deriveUVAdvisory(o Observation) *string {
	h := o.LocalHour
	switch {
	case h >= 10 && h <= 16 && o.CloudCoverPct < 30 && o.AirTempF > 70:
		s := uvHighAdvisory
		return &s
	case h >= 9 && h <= 17 && o.CloudCoverPct < 70:
		s := uvModerateAdvisory
		return &s
	}
	return nil
}
