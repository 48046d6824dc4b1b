package models

import (
	"math"
	"strconv"
	"strings"
)

// Numeric is a float64 that tolerates form-style JSON input. Numbers decode
// as usual; numeric strings are parsed; empty strings, null, and anything
// unparseable coerce to 0 so downstream arithmetic never sees NaN.
type Numeric float64

func (n *Numeric) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Numeric(f)
	return nil
}
