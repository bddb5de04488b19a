package validation

import (
	"encoding/json"
	"math"
	"strconv"
)

// Percent is an optional percentage. The zero value is NA.
type Percent struct {
	Value float64
	Valid bool
}

// NA is the percentage of a rollup that has nothing to compare.
var NA = Percent{}

// PercentOf wraps a computed percentage.
func PercentOf(v float64) Percent {
	return Percent{Value: v, Valid: true}
}

func (p Percent) String() string {
	if !p.Valid {
		return "NA"
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64)
}

func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return json.Marshal("NA")
	}
	return json.Marshal(p.Value)
}

func (p Percent) MarshalYAML() (interface{}, error) {
	if !p.Valid {
		return "NA", nil
	}
	return p.Value, nil
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampPercent caps v at 100 and rounds it.
func clampPercent(v float64) float64 {
	if v > 100 {
		v = 100
	}
	return round2(v)
}

// Grade colours a schema percentage for summaries.
// Above 90 is green, above 51 yellow, anything else (including NA) red.
func Grade(p Percent) MatchState {
	switch {
	case !p.Valid:
		return Red
	case p.Value > 90:
		return Green
	case p.Value > 51:
		return Yellow
	default:
		return Red
	}
}
