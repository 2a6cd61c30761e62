// Package extract implements pure field and attribute extraction over raw
// marketplace messages. All extractors are order-independent and side-effect
// free; each contributes zero or one field.
package extract

import (
	"regexp"
	"strconv"

	"github.com/pazarglobal/agent/internal/textnorm"
)

var (
	digitRunRe    = regexp.MustCompile(`[0-9]+`)
	currencyRe    = regexp.MustCompile(`(?i)\btl\b|₺`)
	bareAmountRe  = regexp.MustCompile(`^\s*[0-9]{2,7}\s*$`)
	priceSpanTail = regexp.MustCompile(`(?i)^\s*(?:tl\b|₺)`)
)

const (
	priceMinDigits = 2
	priceMaxDigits = 7
)

// eligibleRuns returns the [start, end) spans of standalone 2-7 digit runs.
func eligibleRuns(text string) [][]int {
	var runs [][]int
	for _, loc := range digitRunRe.FindAllStringIndex(text, -1) {
		if n := loc[1] - loc[0]; n >= priceMinDigits && n <= priceMaxDigits {
			runs = append(runs, loc)
		}
	}
	return runs
}

func hasCurrencyTail(text string, end int) bool {
	return priceSpanTail.MatchString(text[end:])
}

// Price finds the message's price amount: the first 2-7 digit run directly
// followed by a currency token wins, so "iPhone 13 ... 25000 TL" yields
// 25000, not 13. Without a currency-adjacent run the first eligible run is
// returned. No currency conversion is performed.
func Price(text string) (float64, bool) {
	runs := eligibleRuns(text)
	if len(runs) == 0 {
		return 0, false
	}

	pick := runs[0]
	for _, loc := range runs {
		if hasCurrencyTail(text, loc[1]) {
			pick = loc
			break
		}
	}

	v, err := strconv.ParseFloat(text[pick[0]:pick[1]], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// HasCurrencyMarker reports whether the message carries an explicit currency
// token ("tl" or "₺"), or is nothing but a bare 2-7 digit amount.
func HasCurrencyMarker(text string) bool {
	return currencyRe.MatchString(textnorm.Lower(text)) || bareAmountRe.MatchString(text)
}

// stripPriceSpans removes the priced digit runs from the message: every run
// with a currency tail, or, when none has one, just the first eligible run.
// Other numbers ("13 Pro", "256GB") stay in place for the title.
func stripPriceSpans(text string) string {
	runs := eligibleRuns(text)
	if len(runs) == 0 {
		return text
	}

	var spans [][]int
	for _, loc := range runs {
		if hasCurrencyTail(text, loc[1]) {
			end := loc[1]
			if m := priceSpanTail.FindStringIndex(text[end:]); m != nil {
				end += m[1]
			}
			spans = append(spans, []int{loc[0], end})
		}
	}
	if len(spans) == 0 {
		spans = runs[:1]
	}

	var out []byte
	prev := 0
	for _, span := range spans {
		if span[0] >= prev {
			out = append(out, text[prev:span[0]]...)
			prev = span[1]
		}
	}
	out = append(out, text[prev:]...)
	return string(out)
}
