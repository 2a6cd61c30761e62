// Package textnorm normalizes Turkish marketplace text for dictionary
// matching: case folding, diacritic stripping, and word tokenization.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var turkishLower = cases.Lower(language.Turkish)

// deaccent strips combining marks after NFD decomposition. The dotless ı has
// no decomposition, so it is mapped explicitly.
var deaccent = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}),
	norm.NFC,
)

// Lower case-folds text with Turkish casing rules (İ→i, I→ı).
func Lower(s string) string {
	return turkishLower.String(s)
}

// Fold lowercases with Turkish rules and strips diacritics, so that
// "Şarj Âleti" and "sarj aleti" compare equal.
func Fold(s string) string {
	lowered := Lower(s)
	folded, _, err := transform.String(deaccent, lowered)
	if err != nil {
		return lowered
	}
	return folded
}

// Normalize folds the text and reduces it to the matching alphabet:
// lowercase ASCII letters, digits, '&' and '+' (kept for category labels and
// room formats like "3+1"), with single spaces between runs.
func Normalize(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		keep := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '&' || r == '+'
		if keep {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize returns the normalized word tokens of the text.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Fields(n)
}

// TokenSet returns the normalized tokens as a membership set.
func TokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// ContainsPhrase reports whether the normalized haystack contains the
// normalized phrase on word boundaries.
func ContainsPhrase(haystackNorm, phraseNorm string) bool {
	if haystackNorm == "" || phraseNorm == "" {
		return false
	}
	return strings.Contains(" "+haystackNorm+" ", " "+phraseNorm+" ")
}
