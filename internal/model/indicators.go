package model

import "strconv"

// Reading is an indicator value that may be absent.
// The zero value is absent, which is distinct from a computed zero.
type Reading struct {
	Value float64
	Valid bool
}

// NewReading returns a present reading.
func NewReading(v float64) Reading { return Reading{Value: v, Valid: true} }

// Format renders the value with the given number of decimals, or "n/a" when absent.
func (r Reading) Format(decimals int) string {
	if !r.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(r.Value, 'f', decimals, 64)
}

// IndicatorSnapshot holds the indicators computed for one evaluation.
type IndicatorSnapshot struct {
	MAShort Reading
	MALong  Reading
	RSI     Reading
}

// Complete reports whether every indicator is present.
func (s IndicatorSnapshot) Complete() bool {
	return s.MAShort.Valid && s.MALong.Valid && s.RSI.Valid
}
