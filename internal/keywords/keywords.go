// Package keywords generates search keywords for a listing. A deterministic
// token pass always produces a usable base set; an optional model call can
// widen it but never replaces it.
package keywords

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/logging"
	"github.com/pazarglobal/agent/internal/textnorm"
)

// MaxKeywords caps the final keyword list.
const MaxKeywords = 12

// Chatter is the completion dependency; satisfied by llm.Client.
type Chatter interface {
	Enabled() bool
	Chat(ctx context.Context, system, user string) (string, error)
}

var (
	tokenRe = regexp.MustCompile(`[0-9a-zçğıöşü+]{2,}`)

	stopwords = map[string]struct{}{
		"ürün": {}, "urun": {}, "esya": {}, "eşya": {},
		"satılık": {}, "satilik": {}, "ikinci": {}, "el": {}, "2.el": {},
	}

	// Category boosters widen recall for the highest-traffic verticals.
	vehicleBoost    = []string{"araba", "otomobil", "araç", "vasıta"}
	realEstateBoost = []string{"ev", "daire", "konut", "1+1", "2+1", "3+1"}
	electronicBoost = []string{"telefon", "elektronik"}
)

// Input carries the listing fields keywords are derived from.
type Input struct {
	Title       string
	Category    string
	Description string
	Condition   string
}

// Generator builds keyword sets, optionally enhanced by a model call.
type Generator struct {
	chatter Chatter
	log     logging.Logger
}

// NewGenerator wires the generator. A nil chatter disables enhancement.
func NewGenerator(chatter Chatter, log logging.Logger) *Generator {
	return &Generator{chatter: chatter, log: log}
}

// Deterministic produces the base keyword set from the listing text alone:
// lowercase tokens with stopwords removed, category boosters appended,
// deduplicated in first-seen order and capped at MaxKeywords.
func Deterministic(in Input) []string {
	blob := strings.Join([]string{in.Title, in.Category, in.Description, in.Condition}, " ")
	lower := textnorm.Lower(blob)

	var out []string
	seen := make(map[string]struct{})
	add := func(tokens ...string) {
		for _, t := range tokens {
			if len(out) >= MaxKeywords {
				return
			}
			if _, stop := stopwords[t]; stop {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}

	add(tokenRe.FindAllString(lower, -1)...)

	catNorm := textnorm.Fold(in.Category)
	switch {
	case strings.Contains(catNorm, "otomotiv"):
		add(vehicleBoost...)
	case strings.Contains(catNorm, "emlak"):
		add(realEstateBoost...)
	case strings.Contains(catNorm, "elektronik"):
		add(electronicBoost...)
	}
	return out
}

const enhancePrompt = "Sen bir pazaryeri SEO asistanısın. Verilen ilan için " +
	"Türkçe arama anahtar kelimeleri üret. Sadece JSON döndür: " +
	`{"keywords": ["kelime1", "kelime2"]}`

// Generate returns the deterministic set merged with model suggestions when a
// chatter is configured. Any model failure degrades silently to the base set.
func (g *Generator) Generate(ctx context.Context, in Input) []string {
	base := Deterministic(in)
	if g.chatter == nil || !g.chatter.Enabled() {
		return base
	}

	user := "Başlık: " + in.Title + "\nKategori: " + in.Category
	if in.Description != "" {
		user += "\nAçıklama: " + in.Description
	}

	raw, err := g.chatter.Chat(ctx, enhancePrompt, user)
	if err != nil {
		g.log.Warn("keyword enhancement failed, using deterministic set",
			logging.Error(err))
		return base
	}

	extra := parseKeywordJSON(raw)
	if len(extra) == 0 {
		return base
	}

	seen := make(map[string]struct{}, len(base))
	merged := make([]string, 0, MaxKeywords)
	for _, k := range base {
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	for _, k := range extra {
		if len(merged) >= MaxKeywords {
			break
		}
		k = strings.TrimSpace(textnorm.Lower(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, k)
	}
	return merged
}

// parseKeywordJSON pulls the keywords array out of a model reply, tolerating
// surrounding prose and code fences.
func parseKeywordJSON(raw string) []string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil
	}
	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil
	}
	return parsed.Keywords
}

// Text joins keywords into the flat string stored alongside the structured
// list for ILIKE matching.
func Text(kws []string) string {
	return strings.Join(kws, " ")
}
