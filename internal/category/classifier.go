package category

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/pazarglobal/agent/internal/textnorm"
)

// Scoring tiers.
const (
	tierStrong = iota
	tierWeak
)

// phraseRef ties a multi-word phrase in the automaton back to its category
// and tier.
type phraseRef struct {
	spec int
	tier int
}

// matcher holds the compiled dictionaries: single tokens per category/tier
// for token-set intersection, and one Aho-Corasick automaton over all
// multi-word phrases (space-padded so hits land on word boundaries).
type matcher struct {
	strongTokens []map[string]struct{}
	weakTokens   []map[string]struct{}
	phrases      *ahocorasick.Matcher
	phraseRefs   []phraseRef
}

var defaultMatcher = buildMatcher()

func buildMatcher() *matcher {
	m := &matcher{
		strongTokens: make([]map[string]struct{}, len(specs)),
		weakTokens:   make([]map[string]struct{}, len(specs)),
	}

	var padded []string
	add := func(specIdx, tier int, phrases []string) map[string]struct{} {
		tokens := make(map[string]struct{})
		for _, p := range phrases {
			n := textnorm.Normalize(p)
			if n == "" {
				continue
			}
			if strings.Contains(n, " ") {
				padded = append(padded, " "+n+" ")
				m.phraseRefs = append(m.phraseRefs, phraseRef{spec: specIdx, tier: tier})
				continue
			}
			tokens[n] = struct{}{}
		}
		return tokens
	}

	for i, spec := range specs {
		m.strongTokens[i] = add(i, tierStrong, spec.Strong)
		m.weakTokens[i] = add(i, tierWeak, spec.Weak)
	}

	if len(padded) > 0 {
		m.phrases = ahocorasick.NewStringMatcher(padded)
	}
	return m
}

// score counts phrase and token matches per category. Token hits come from
// set intersection, multi-word hits from a single automaton pass.
func (m *matcher) score(textNorm string, tokenSet map[string]struct{}) (strong, weak []int) {
	strong = make([]int, len(specs))
	weak = make([]int, len(specs))

	for i := range specs {
		for t := range m.strongTokens[i] {
			if _, ok := tokenSet[t]; ok {
				strong[i]++
			}
		}
		for t := range m.weakTokens[i] {
			if _, ok := tokenSet[t]; ok {
				weak[i]++
			}
		}
	}

	if m.phrases != nil {
		for _, hit := range m.phrases.Match([]byte(" " + textNorm + " ")) {
			ref := m.phraseRefs[hit]
			if ref.tier == tierStrong {
				strong[ref.spec]++
			} else {
				weak[ref.spec]++
			}
		}
	}
	return strong, weak
}

var (
	roomFormatRe = regexp.MustCompile(`\b\d\+\d\b`)
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	kmRe         = regexp.MustCompile(`\b\d{1,3}(?:\s*\.?\s*\d{3})?\s*km\b`)
)

// realEstateContext tokens combine with a room format ("3+1") to force the
// Emlak category before generic scoring.
var realEstateContext = map[string]struct{}{
	"emlak": {}, "daire": {}, "ev": {}, "konut": {}, "apart": {},
	"apartman": {}, "rezidans": {}, "villa": {}, "yazlik": {},
	"mustakil": {}, "arsa": {}, "tarla": {}, "ofis": {}, "dukkan": {},
}

// Classify scores free text against the taxonomy and returns the winning
// category id. Selection: a category is eligible with any strong hit, or
// two weak hits, or (Otomotiv only) one weak hit plus a year, a km marker,
// or the word "model" — a brand name alone is not enough. Highest strong
// score wins; ties break on weak score, then taxonomy order.
func Classify(text string) (string, bool) {
	textNorm := textnorm.Normalize(text)
	if textNorm == "" {
		return "", false
	}
	tokenSet := textnorm.TokenSet(text)

	if roomFormatRe.MatchString(textNorm) {
		for t := range tokenSet {
			if _, ok := realEstateContext[t]; ok {
				return "Emlak", true
			}
		}
		if textnorm.ContainsPhrase(textNorm, "studyo daire") {
			return "Emlak", true
		}
	}

	strong, weak := defaultMatcher.score(textNorm, tokenSet)

	bestIdx := -1
	for i, spec := range specs {
		if strong[i] <= 0 {
			switch {
			case weak[i] >= 2:
				// Brand pile-up is evidence enough.
			case spec.Label == "Otomotiv" && weak[i] >= 1:
				hasYear := yearRe.MatchString(textNorm)
				hasKM := kmRe.MatchString(textNorm) || strings.Contains(textNorm, "kilometre")
				_, hasModel := tokenSet["model"]
				if !hasYear && !hasKM && !hasModel {
					continue
				}
			default:
				continue
			}
		}
		if bestIdx < 0 ||
			strong[i] > strong[bestIdx] ||
			(strong[i] == strong[bestIdx] && weak[i] > weak[bestIdx]) {
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return "", false
	}
	return specs[bestIdx].Label, true
}

// NormalizeID accepts a category the user typed verbatim: an exact case- and
// diacritic-insensitive match against known ids and labels wins, otherwise
// the classifier takes over.
func NormalizeID(text string) (string, bool) {
	raw := textnorm.Normalize(text)
	if raw == "" {
		return "", false
	}
	for _, opt := range Options {
		if textnorm.Normalize(opt.ID) == raw || textnorm.Normalize(opt.Label) == raw {
			return opt.ID, true
		}
	}
	return Classify(text)
}
