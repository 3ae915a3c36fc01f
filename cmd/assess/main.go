// Command assess runs the safety classifier offline against a saved
// OpenWeatherMap current weather payload. It is a development aid for
// checking how a given observation classifies without a running service
// or an API key.
//
// Usage:
//
//	go run ./cmd/assess -beach "coney island" -payload testdata/clear_sky.json
//	curl -s "$OWM_URL" | go run ./cmd/assess -beach "rockaway beach" -hour 14
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/couchcryptid/beach-safety-advisor/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assess: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	beach := flag.String("beach", "", "beach name to assess (see -list)")
	payloadPath := flag.String("payload", "", "path to a saved provider payload; reads stdin when omitted")
	hour := flag.Int("hour", -1, "local hour 0-23 for the UV rules; defaults to the current hour in -tz")
	tzName := flag.String("tz", "America/New_York", "timezone used when -hour is not set")
	list := flag.Bool("list", false, "print the known beaches and exit")
	flag.Parse()

	table := domain.DefaultBeaches()

	if *list {
		for _, e := range table.Entries() {
			fmt.Printf("%-20s %s (%.4f, %.4f)\n", e.Key, e.DisplayName, e.Latitude, e.Longitude)
		}
		return nil
	}

	if *beach == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -beach")
	}

	entry, err := table.Resolve(*beach)
	if err != nil {
		return err
	}

	payload, err := readPayload(*payloadPath)
	if err != nil {
		return err
	}

	localHour, err := resolveLocalHour(*hour, *tzName)
	if err != nil {
		return err
	}

	obs, err := domain.NormalizeObservation(payload, localHour)
	if err != nil {
		return err
	}

	report := domain.BuildReport(entry, obs, domain.Classify(obs))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// resolveLocalHour validates the -hour flag. -1 means unset and falls back
// to the current hour in the given timezone; anything else outside 0-23 is
// rejected rather than silently remapped.
func resolveLocalHour(hour int, tzName string) (int, error) {
	if hour < -1 || hour > 23 {
		return 0, fmt.Errorf("invalid -hour %d: must be 0-23", hour)
	}
	if hour >= 0 {
		return hour, nil
	}
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return 0, fmt.Errorf("invalid -tz %q: %w", tzName, err)
	}
	return time.Now().In(tz).Hour(), nil
}

func readPayload(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
