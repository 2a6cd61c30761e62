package extract

import (
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/textnorm"
)

const (
	titleMaxLen = 80
	titleMinLen = 3
)

var (
	pureNumberRe = regexp.MustCompile(`^\d{2,7}$`)
	spaceRunRe   = regexp.MustCompile(`\s+`)
	titleWordRe  = regexp.MustCompile(`[a-zçğıöşü]+`)
)

// titleBlockedKeywords keep command-like messages from becoming titles. They
// match whole words only: "bul" inside "istanbul" is not a command.
var titleBlockedKeywords = []string{
	"ara", "bul", "listele", "onaylıyorum", "yayınla", "iptal",
}

// Title derives a listing title from the message by removing the detected
// price and location spans. Returns false when the remainder is empty, too
// short, purely numeric, or the message looks like a command.
func Title(text string, hasPrice bool, location string) (string, bool) {
	msg := strings.TrimSpace(text)
	if len(msg) < 4 {
		return "", false
	}
	lower := textnorm.Lower(msg)
	for _, word := range titleWordRe.FindAllString(lower, -1) {
		for _, kw := range titleBlockedKeywords {
			if word == kw {
				return "", false
			}
		}
	}
	if pureNumberRe.MatchString(msg) {
		return "", false
	}

	clean := msg
	if hasPrice {
		clean = stripPriceSpans(clean)
	}
	if location != "" {
		// The location was extracted verbatim from this message, so a plain
		// substring removal is exact. A word-boundary regexp would miss it:
		// \b is ASCII-only and never fires next to Turkish letters.
		clean = strings.ReplaceAll(clean, location, " ")
	}
	clean = strings.TrimSpace(spaceRunRe.ReplaceAllString(clean, " "))

	if len(clean) < titleMinLen || pureNumberRe.MatchString(clean) {
		return "", false
	}
	if runes := []rune(clean); len(runes) > titleMaxLen {
		clean = strings.TrimSpace(string(runes[:titleMaxLen]))
	}
	return clean, true
}
