package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"tradestats/pkg/contracts/domain"
)

// NumberResult is a parsed numeric cell. Fallback is set when the cell
// could not be read and Value holds the default.
type NumberResult struct {
	Value    float64
	Fallback bool
}

// Number parses a numeric cell written with either decimal convention.
// With both ',' and '.' present the last one is the decimal mark and the
// other is a thousands separator. A lone separator that repeats groups
// thousands; a single ',' is the decimal mark.
func Number(raw string) NumberResult {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return NumberResult{Fallback: true}
	}

	commas, dots := strings.Count(s, ","), strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case commas == 1:
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return NumberResult{Fallback: true}
	}
	return NumberResult{Value: v}
}

// Volume parses a lot size. Unparseable or non-positive values become
// domain.MinVolume.
func Volume(raw string) NumberResult {
	n := Number(raw)
	if n.Fallback || n.Value <= 0 {
		return NumberResult{Value: domain.MinVolume, Fallback: true}
	}
	return n
}

