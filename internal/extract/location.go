package extract

import (
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/textnorm"
)

// locationRe captures a trailing run of letters and spaces, optionally
// prefixed with an explicit "konum:" marker.
var locationRe = regexp.MustCompile(`(?:konum\s*:\s*)?([A-Za-zÇĞİÖŞÜçğıöşü\s]{3,20})$`)

// blockedLocationTokens disqualify a trailing phrase from being a location:
// currency words and search markers that commonly end a message.
var blockedLocationTokens = []string{
	"tl", "try", "lira", "türk lirası", "turk lirasi",
	"arıyorum", "aramak", "var mı", "varmi",
}

const locationMaxWords = 3

// Location extracts a trailing location-like phrase: at most 20 letters and
// spaces, at most 3 words, not containing currency or search markers. A known
// city as the final word wins over the raw phrase, so "satılık İstanbul" and
// "TL İstanbul" both yield just the city.
func Location(text string) (string, bool) {
	m := locationRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	candidate := strings.TrimSpace(m[1])
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return "", false
	}

	if last := words[len(words)-1]; isCity(last) {
		return last, true
	}

	if len(words) > locationMaxWords {
		return "", false
	}
	lower := textnorm.Lower(candidate)
	for _, blocked := range blockedLocationTokens {
		if strings.Contains(lower, blocked) {
			return "", false
		}
	}
	return candidate, true
}

func isCity(word string) bool {
	lower := textnorm.Lower(word)
	for _, city := range cityTable {
		if lower == city {
			return true
		}
	}
	return false
}

// cityTable lists major Turkish cities recognized as search location hints.
var cityTable = []string{
	"istanbul", "ankara", "izmir", "bursa", "antalya", "adana", "konya",
	"gaziantep", "şanlıurfa", "kocaeli", "mersin", "diyarbakır", "kayseri",
	"eskişehir", "izmit", "trabzon", "balıkesir", "malatya", "erzurum",
}

// LocationHint returns a known city name mentioned anywhere in a search
// query, for filtering results.
func LocationHint(query string) (string, bool) {
	lower := textnorm.Lower(query)
	for _, city := range cityTable {
		if strings.Contains(lower, city) {
			return city, true
		}
	}
	return "", false
}
