package engine

import (
	"math"
	"strconv"
	"strings"
)

// Formatter renders numeric results for display. Magnitudes at or above
// UpperExp, or below LowerExp (excluding zero), switch to exponential
// notation; everything else is fixed-point with at most MaxDecimals digits
// after the point, trailing zeros trimmed.
type Formatter struct {
	UpperExp    float64
	LowerExp    float64
	MaxDecimals int
}

var defaultFormatter = Formatter{
	UpperExp:    1e12,
	LowerExp:    1e-9,
	MaxDecimals: 8,
}

// Format renders v according to the formatter's thresholds.
func (f Formatter) Format(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= f.UpperExp || abs < f.LowerExp {
		return strconv.FormatFloat(v, 'e', f.MaxDecimals, 64)
	}

	s := strconv.FormatFloat(v, 'f', f.MaxDecimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatResult renders v with the default display thresholds.
func FormatResult(v float64) string {
	return defaultFormatter.Format(v)
}
