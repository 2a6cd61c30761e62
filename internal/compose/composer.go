// Package compose synthesizes listing titles and descriptions from partial
// structured data collected during slot filling.
package compose

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/textnorm"
)

const (
	// Title enrichment appends at most 30% of the base title's length of
	// extra terms, never less than 10 characters worth.
	enrichRatio    = 0.3
	enrichMinExtra = 10

	defaultCondition = "2.el"
)

// enrichPriority is the fixed order distinguishing terms are packed into the
// title suffix.
var enrichPriority = []string{
	domain.AttrBrand, domain.AttrModel, domain.AttrStorage,
	domain.AttrRAM, domain.AttrColor, domain.AttrYear,
}

// collectAttributes flattens the attribute sources into a single map, with
// top-level listing fields taking precedence over the nested attribute map,
// and vision data filling brand/model/color gaps.
func collectAttributes(listingData, vision domain.JSONMap) map[string]string {
	raw := listingData.Map(domain.FieldAttributes)
	attrs := make(map[string]string)

	put := func(key string, values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				attrs[key] = v
				return
			}
		}
	}

	put(domain.AttrBrand, listingData.Text(domain.AttrBrand), raw.Text(domain.AttrBrand), vision.Text(domain.AttrBrand))
	put(domain.AttrModel, listingData.Text(domain.AttrModel), raw.Text(domain.AttrModel), vision.Text(domain.AttrModel))
	put(domain.AttrColor, listingData.Text(domain.AttrColor), raw.Text(domain.AttrColor), vision.Text(domain.AttrColor))
	for _, key := range []string{
		domain.AttrYear, domain.AttrKM, domain.AttrFuel, domain.AttrTransmission,
		domain.AttrEngine, domain.AttrTramer, domain.AttrWarranty, domain.AttrStorage,
		domain.AttrRAM, domain.AttrBattery, domain.AttrUsage, domain.AttrFeatures,
	} {
		put(key, listingData.Text(key), raw.Text(key))
	}
	return attrs
}

// EnrichTitle appends distinguishing attribute terms not already present in
// the title, packed greedily in priority order within the length budget.
func EnrichTitle(title string, listingData, vision domain.JSONMap) string {
	base := strings.TrimSpace(title)
	if base == "" {
		return ""
	}

	maxExtra := int(float64(len(base)) * enrichRatio)
	if maxExtra < enrichMinExtra {
		maxExtra = enrichMinExtra
	}

	attrs := collectAttributes(listingData, vision)
	baseNorm := textnorm.Fold(base)

	var candidates []string
	for _, key := range enrichPriority {
		val := attrs[key]
		if val == "" || strings.Contains(baseNorm, textnorm.Fold(val)) {
			continue
		}
		candidates = append(candidates, val)
	}
	if len(candidates) == 0 {
		return base
	}

	var parts []string
	remaining := maxExtra
	for _, c := range candidates {
		if len(c)+1 > remaining {
			continue
		}
		parts = append(parts, c)
		remaining -= len(c) + 1
		if remaining <= 0 {
			break
		}
	}
	if len(parts) == 0 {
		return base
	}
	return strings.TrimSpace(base + " " + strings.Join(parts, ", "))
}

var (
	longDigitRunRe = regexp.MustCompile(`\b\d{7,}\b`)
	priceNoteRe    = regexp.MustCompile(`(?i)\b\d{2,7}\s*(?:tl\b|₺)`)
	noteSpaceRe    = regexp.MustCompile(`\s+`)
)

// vehicleCategoryHints mark a category string as vehicle-like beyond the
// exact "Otomotiv" id.
var vehicleCategoryHints = []string{"araba", "otomobil", "motosiklet", "arac", "vasita"}

func isVehicleCategory(category string) bool {
	catNorm := textnorm.Fold(category)
	if catNorm == textnorm.Fold("Otomotiv") {
		return true
	}
	for _, hint := range vehicleCategoryHints {
		if strings.Contains(catNorm, hint) {
			return true
		}
	}
	return false
}

type attrLine struct {
	label string
	key   string
}

var vehicleHighlights = []attrLine{
	{"Yıl", domain.AttrYear},
	{"KM", domain.AttrKM},
	{"Yakıt", domain.AttrFuel},
	{"Vites", domain.AttrTransmission},
	{"Motor", domain.AttrEngine},
	{"Tramer", domain.AttrTramer},
	{"Renk", domain.AttrColor},
}

var genericHighlights = []attrLine{
	{"Marka", domain.AttrBrand},
	{"Model", domain.AttrModel},
	{"Renk", domain.AttrColor},
	{"Depolama", domain.AttrStorage},
	{"RAM", domain.AttrRAM},
	{"Garanti", domain.AttrWarranty},
}

// Description builds the fixed-order multi-line listing description from
// whatever structured data exists. Returns "" only when the title is empty.
func Description(listingData, vision domain.JSONMap) string {
	title := listingData.String(domain.FieldTitle)
	if title == "" {
		return ""
	}

	category := listingData.String(domain.FieldCategory)
	condition := listingData.String(domain.FieldCondition)
	if condition == "" {
		condition = defaultCondition
	}
	location := listingData.String(domain.FieldLocation)
	notes := firstNonEmpty(
		listingData.String(domain.FieldDescriptionNotes),
		listingData.String("notes"),
		listingData.Map(domain.FieldAttributes).Text("notes"),
	)

	attrs := collectAttributes(listingData, vision)

	lines := []string{
		fmt.Sprintf("%s ilanıdır.", title),
		fmt.Sprintf("Durum: %s.", condition),
	}

	highlights := genericHighlights
	if isVehicleCategory(category) {
		highlights = vehicleHighlights
	}
	var bits []string
	for _, h := range highlights {
		if val := attrs[h.key]; val != "" {
			bits = append(bits, fmt.Sprintf("%s: %s", h.label, val))
		}
	}
	if len(bits) > 0 {
		lines = append(lines, "Öne çıkanlar: "+strings.Join(bits, ", ")+".")
	}

	var visionBits []string
	if vc := vision.Text(domain.FieldCondition); vc != "" {
		visionBits = append(visionBits, "Görsellerdeki durum: "+vc)
	}
	if vcol := vision.Text(domain.AttrColor); vcol != "" && attrs[domain.AttrColor] == "" {
		visionBits = append(visionBits, "Görsellerdeki renk: "+vcol)
	}
	if len(visionBits) > 0 {
		lines = append(lines, strings.Join(visionBits, " · ")+".")
	}

	if cleaned := redactNotes(notes, location); cleaned != "" {
		lines = append(lines, "Ek bilgiler: "+cleaned+".")
	}

	lines = append(lines,
		"Bilgiler kullanıcı beyanına ve görsellere dayanır.",
		"Doğru alıcı için iyi bir seçenek.",
	)
	return strings.Join(lines, "\n")
}

// redactNotes strips phone-like digit runs, price spans, and the known
// location string from free-text notes.
func redactNotes(notes, location string) string {
	if notes == "" {
		return ""
	}
	cleaned := longDigitRunRe.ReplaceAllString(notes, "")
	cleaned = priceNoteRe.ReplaceAllString(cleaned, "")
	if location != "" {
		// No \b around the pattern: Go's word boundary is ASCII-only and
		// never matches next to Turkish letters.
		if locRe, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(location)); err == nil {
			cleaned = locRe.ReplaceAllString(cleaned, "")
		}
	}
	return strings.TrimSpace(noteSpaceRe.ReplaceAllString(cleaned, " "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
