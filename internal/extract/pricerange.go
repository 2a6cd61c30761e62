package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pazarglobal/agent/internal/textnorm"
)

var (
	rangePattern = regexp.MustCompile(`(\d+(?:k|bin|b)?)\s*[-–]\s*(\d+(?:k|bin|b)?)`)
	underPattern = regexp.MustCompile(`(\d+(?:k|bin|b)?)\s*(?:altı|altında|under|below)`)
	overPattern  = regexp.MustCompile(`(\d+(?:k|bin|b)?)\s*(?:üstü|üstünde|over|above)`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
)

// PriceRange reads budget constraints from a search query: "10000-20000",
// "50k altı", "100bin üstü". Either bound may be nil.
func PriceRange(query string) (minPrice, maxPrice *float64) {
	q := textnorm.Lower(query)

	if m := rangePattern.FindStringSubmatch(q); m != nil {
		return parseAmount(m[1]), parseAmount(m[2])
	}
	if m := underPattern.FindStringSubmatch(q); m != nil {
		return nil, parseAmount(m[1])
	}
	if m := overPattern.FindStringSubmatch(q); m != nil {
		return parseAmount(m[1]), nil
	}
	return nil, nil
}

// parseAmount handles thousand shorthands: "50k" and "100bin" are 50000 and
// 100000.
func parseAmount(s string) *float64 {
	s = strings.TrimSpace(textnorm.Lower(s))
	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "k"):
		s = strings.TrimSuffix(s, "k")
		multiplier = 1000
	case strings.HasSuffix(s, "bin"), strings.HasSuffix(s, "b"):
		s = nonDigitRe.ReplaceAllString(s, "")
		multiplier = 1000
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v *= multiplier
	return &v
}
