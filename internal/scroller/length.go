package scroller

import (
	"math"
	"regexp"
	"strconv"
)

var lengthPattern = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d+)?|\.\d+))(px|em|rem|vh)$`)

// IsLength reports whether s is a length ParseLength understands.
func IsLength(s string) bool {
	return lengthPattern.MatchString(s)
}

// ParseLength converts a length such as "20px", "50vh", "1.5rem" or "2em"
// into lines. Unrecognised or unparseable strings yield 0.
func ParseLength(s string, u Units) float64 {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	var h float64
	switch m[2] {
	case "px":
		h = value
	case "vh":
		if u != nil {
			h = value / 100 * u.WindowHeight()
		}
	case "rem":
		if u != nil {
			h = value * u.RootFontSize()
		}
	case "em":
		if u != nil {
			h = value * u.FontSize()
		}
	}

	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	return h
}
