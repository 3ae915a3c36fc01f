// Package domain models swimming-safety assessments for named beaches.
//
// # Data Source
//
// Current atmospheric observations come from the OpenWeatherMap current
// weather API, requested with imperial units for a fixed latitude/longitude.
// The upstream adapter fetches the raw JSON payload; this package reduces it
// to an internal Observation and derives a safety verdict from it. The beach
// coordinate table is a static, process-wide value: nine New York City area
// beaches keyed by normalized lowercase name.
//
// # Observation Conventions
//
// Units:
//
//	Temperatures and wind speeds arrive already in imperial units (°F, mph).
//	Visibility arrives in meters and is converted to miles (÷1609.34).
//	Cloud cover and humidity are percentages.
//
// Required fields:
//
//	temp, feels_like, humidity, pressure, wind speed, wind direction, the
//	primary condition text, visibility, and cloud cover must all be present.
//	A missing required field fails normalization with MalformedPayloadError
//	naming the field; defaulting a missing temperature or wind value would
//	silently corrupt the verdict. Wind gust is the one optional field: its
//	absence is distinct from a gust of zero.
//
// Condition categories:
//
//	The provider's free-text condition is bucketed into a closed vocabulary
//	(thunderstorm, rain, drizzle, clouds, clear, other) by case-insensitive
//	substring match in fixed priority order. Thunderstorm is checked first so
//	it is never shadowed by a broader match in mixed text such as
//	"thunderstorm with light rain".
//
// # Safety Classification
//
// Severity rules are an ordered table; every rule is evaluated and the
// verdict is the most severe tier among those that matched:
//
//	DANGEROUS: thunderstorm
//	POOR:      wind > 15 mph | air temp < 60°F | rain | visibility < 0.62 mi
//	CAUTION:   wind > 10 mph | air temp < 70°F | drizzle | cloud cover > 80%
//	GOOD:      no rule fired
//
// Classification always uses the raw (unrounded) observation values; rounding
// happens only in the display record, so values near a threshold cannot
// flicker between verdicts.
//
// Recommendations are an ordered advisory table. The lifeguard reminder is
// unconditional and always first; the gust/sustained-wind rules, the cold
// rules, and the heat rules are each mutually exclusive groups where the
// first match wins. Output order follows table order regardless of which
// subset fired, so identical inputs always produce identical output.
package domain
