package extract

import (
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/textnorm"
)

// attributeRule contributes one attribute key when its pattern matches.
// Rules run in declaration order and a later rule overwrites an earlier
// value for the same key (last-match-wins, a deliberate, tested choice for
// messages carrying mutually exclusive phrases).
type attributeRule struct {
	key     string
	pattern *regexp.Regexp
	// value renders the attribute from the match groups; when nil the rule
	// stores fixed instead.
	value func(groups []string) string
	fixed string
}

var attributeRules = []attributeRule{
	// Vehicle
	{key: domain.AttrYear, pattern: regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`), value: func(g []string) string { return g[1] }},
	{key: domain.AttrKM, pattern: regexp.MustCompile(`\b(\d{1,3}(?:[.,]\d{3})+|\d{1,7})\s*km\b`), value: func(g []string) string {
		return strings.NewReplacer(".", "", ",", "").Replace(g[1])
	}},
	{key: domain.AttrFuel, pattern: regexp.MustCompile(`\b(dizel|diesel)\b`), fixed: "Dizel"},
	{key: domain.AttrFuel, pattern: regexp.MustCompile(`\b(benzinli|benzin)\b`), fixed: "Benzin"},
	{key: domain.AttrFuel, pattern: regexp.MustCompile(`\b(hibrit|hybrid)\b`), fixed: "Hibrit"},
	{key: domain.AttrFuel, pattern: regexp.MustCompile(`\b(elektrikli|elektrik)\b`), fixed: "Elektrik"},
	{key: domain.AttrFuel, pattern: regexp.MustCompile(`\b(lpg)\b`), fixed: "LPG"},
	{key: domain.AttrTransmission, pattern: regexp.MustCompile(`\b(otomatik)\b`), fixed: "Otomatik"},
	{key: domain.AttrTransmission, pattern: regexp.MustCompile(`\b(manuel)\b`), fixed: "Manuel"},
	{key: domain.AttrTransmission, pattern: regexp.MustCompile(`\b(yarı otomatik|yarı-otomatik)\b`), fixed: "Yarı otomatik"},
	{key: domain.AttrTramer, pattern: regexp.MustCompile(`\b(tramer yok|hasar kaydı yok|hasar kaydi yok)\b`), fixed: "Yok"},
	{key: domain.AttrTramer, pattern: regexp.MustCompile(`\btramer\s*[:=-]?\s*(\d+[.,]?\d*)\b`), value: func(g []string) string { return g[1] }},

	// Electronics
	{key: domain.AttrStorage, pattern: regexp.MustCompile(`\b(\d{2,4})\s*gb\b`), value: func(g []string) string { return g[1] + "GB" }},
	{key: domain.AttrRAM, pattern: regexp.MustCompile(`\b(\d{1,2})\s*gb\s*ram\b`), value: func(g []string) string { return g[1] + "GB" }},
	{key: domain.AttrWarranty, pattern: regexp.MustCompile(`\b(garanti var|garantili)\b`), fixed: "Var"},
	{key: domain.AttrWarranty, pattern: regexp.MustCompile(`\b(garanti yok)\b`), fixed: "Yok"},

	// Apparel
	{key: domain.AttrSize, pattern: regexp.MustCompile(`\b(xs|s|m|l|xl|xxl|\d{2,3})\b`), value: func(g []string) string { return strings.ToUpper(g[1]) }},
	{key: domain.AttrMaterial, pattern: regexp.MustCompile(`\b(deri|pamuk|kot|kumas|kumaş)\b`), value: func(g []string) string { return g[1] }},
}

// Attributes extracts domain attributes (vehicle, electronics, apparel) from
// the message. Returns nil when nothing matched.
func Attributes(text string) map[string]any {
	lower := textnorm.Lower(text)
	attrs := make(map[string]any)
	for _, rule := range attributeRules {
		input := lower
		if rule.key == domain.AttrYear {
			// Year matching is case-insensitive by nature; keep the raw
			// message so digit offsets are untouched.
			input = text
		}
		g := rule.pattern.FindStringSubmatch(input)
		if g == nil {
			continue
		}
		if rule.value != nil {
			attrs[rule.key] = rule.value(g)
		} else {
			attrs[rule.key] = rule.fixed
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
