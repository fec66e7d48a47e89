// Package units converts the heterogeneous unit-bearing strings found in
// scraped route listings into canonical numeric values: distances in
// kilometers, elevations in meters, speeds in km/h and durations in minutes.
// All functions are pure; missing input ("" or the literal "na") normalizes
// to nil, everything else either parses or fails loudly.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/philippdrebes/MSCIDS-CIP02/internal/route"
	"github.com/philippdrebes/MSCIDS-CIP02/pkg/errors"
)

// Unit identifies the unit a raw value was scraped in
type Unit string

const (
	UnitMiles      Unit = "mi"
	UnitKilometers Unit = "km"
	UnitFeet       Unit = "ft"
	UnitMeters     Unit = "m"
	UnitMilesPerH  Unit = "mph"
	UnitKmPerH     Unit = "kmh"
)

const (
	milesToKm = 1.609344
	feetToM   = 0.3048
)

var numberPattern = regexp.MustCompile(`\d+`)

// Distance parses a scraped distance string and returns kilometers rounded
// to two decimals. Miles are converted with the factor 1.609344.
func Distance(raw string, unit Unit) (*float64, error) {
	v, err := parseNumber(raw, unit)
	if v == nil || err != nil {
		return nil, err
	}
	if unit == UnitMiles {
		*v = *v * milesToKm
	}
	return round2(*v), nil
}

// Elevation parses a scraped elevation string and returns meters rounded to
// two decimals. Feet are converted with the factor 0.3048.
func Elevation(raw string, unit Unit) (*float64, error) {
	v, err := parseNumber(raw, unit)
	if v == nil || err != nil {
		return nil, err
	}
	if unit == UnitFeet {
		*v = *v * feetToM
	}
	return round2(*v), nil
}

// Speed parses a scraped speed string and returns km/h rounded to two
// decimals. Mph uses the same mile factor as Distance.
func Speed(raw string, unit Unit) (*float64, error) {
	v, err := parseNumber(raw, unit)
	if v == nil || err != nil {
		return nil, err
	}
	if unit == UnitMilesPerH {
		*v = *v * milesToKm
	}
	return round2(*v), nil
}

// ParseDuration parses a scraped duration into minutes. Two encodings occur
// in the wild: clock-style "2:35" and natural-language "2 h 49 min" / "2 h".
// For the natural-language form the number of numeric components decides the
// branch, not the presence of a "min" literal: one component is hours, two
// are hours and minutes.
func ParseDuration(raw string) (*route.Duration, error) {
	s := strings.TrimSpace(raw)
	if missing(s) {
		return nil, nil
	}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, errors.NewParse("", "duration", "malformed clock duration "+strconv.Quote(raw), err)
		}
		m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.NewParse("", "duration", "malformed clock duration "+strconv.Quote(raw), err)
		}
		d := route.Duration(h*60 + m)
		return &d, nil
	}

	components := numberPattern.FindAllString(s, -1)
	switch len(components) {
	case 1:
		h, _ := strconv.Atoi(components[0])
		d := route.Duration(h * 60)
		return &d, nil
	case 2:
		h, _ := strconv.Atoi(components[0])
		m, _ := strconv.Atoi(components[1])
		d := route.Duration(h*60 + m)
		return &d, nil
	default:
		return nil, errors.NewParse("", "duration", "malformed duration "+strconv.Quote(raw), nil)
	}
}

// MapLevel looks up a raw difficulty/fitness token in a source vocabulary.
// A token without an entry is a data error, never a silent default; source
// and field only label the error.
func MapLevel(raw string, vocab map[string]route.Level, source, field string) (route.Level, error) {
	token := strings.TrimSpace(raw)
	if level, ok := vocab[token]; ok {
		return level, nil
	}
	return "", errors.NewUnmappedVocabulary(source, field, token)
}

// parseNumber strips the unit suffix and separators from a scraped value and
// parses the remainder as a float. Swiss thousands apostrophes are always
// grouping; a comma is a decimal point only when no dot is present.
func parseNumber(raw string, unit Unit) (*float64, error) {
	s := strings.TrimSpace(raw)
	if missing(s) {
		return nil, nil
	}

	s = stripSuffix(s, unit)
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		// Imperial sources write commas as thousands grouping ("1,250 ft");
		// metric sources use a decimal comma ("12,3 km") unless a dot is
		// already present.
		if imperial(unit) || strings.Contains(s, ".") || strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.NewParse("", string(unit), "malformed number "+strconv.Quote(raw), err)
	}
	return &v, nil
}

func stripSuffix(s string, unit Unit) string {
	lower := strings.ToLower(s)
	for _, suffix := range suffixes(unit) {
		if strings.HasSuffix(lower, suffix) {
			return strings.TrimSpace(s[:len(s)-len(suffix)])
		}
	}
	return s
}

func suffixes(unit Unit) []string {
	switch unit {
	case UnitMiles:
		return []string{"mi"}
	case UnitKilometers:
		return []string{"km"}
	case UnitFeet:
		return []string{"ft"}
	case UnitMeters:
		return []string{"m"}
	case UnitMilesPerH:
		return []string{"mph"}
	case UnitKmPerH:
		return []string{"km/h", "kmh"}
	}
	return nil
}

func imperial(unit Unit) bool {
	switch unit {
	case UnitMiles, UnitFeet, UnitMilesPerH:
		return true
	}
	return false
}

func missing(s string) bool {
	return s == "" || strings.EqualFold(s, "na")
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
