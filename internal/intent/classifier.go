// Package intent maps a single inbound message to one of the fixed user
// intents with a confidence score.
//
// Classification is an ordered rule cascade: rules are evaluated in the
// declared order and the first hit wins. The ordering is load-bearing and
// resolves token overlap between vocabularies — "paylaş" appears in both the
// commit and create vocabularies and commit is checked first; "istiyorum" is
// a weak search signal that a create-pattern hit shadows purely through
// ordering. Reordering rules changes behavior; the per-rule tests pin it.
package intent

import (
	"regexp"
	"strings"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/extract"
	"github.com/pazarglobal/agent/internal/textnorm"
)

// Result is a classified intent with its confidence.
type Result struct {
	Intent     domain.Intent
	Confidence float64
}

// Confidence levels per rule.
const (
	confGreeting      = 0.9
	confSmallTalk     = 0.85
	confCancel        = 0.95
	confCommit        = 0.9
	confCreate        = 0.85
	confSearchVerb    = 0.75
	confSearchMarker  = 0.8
	confPriceInquiry  = 0.85
	confListingPacket = 0.55
	confBarePrice     = 0.5
	confUnknown       = 0.4
)

var (
	greetingTokens = []string{
		"selam", "merhaba", "hey", "sa", "selamlar", "günaydın",
		"iyi akşamlar", "iyi günler",
	}
	smallTalkTokens = []string{
		"nasılsın", "naber", "ne haber", "hayat nasıl", "nasıl gidiyor",
		"iyisin", "iyi misin",
	}
	cancelTokens = []string{"iptal", "vazgeç", "kapat", "cancel", "stop"}
	commitTokens = []string{"onaylıyorum", "yayınla", "yayınlayalım", "paylaş", "publish"}

	// Create patterns run before search patterns to avoid cross-matching.
	createPatterns = []string{
		"ilan ver", "ilan vermek", "ilan oluştur", "ilan yayınla",
		"sat", "satılık", "satmak", "yayına", "ürün sat",
		"ekle", "eklemek", "paylaş", "paylaşmak",
	}

	searchVerbs = []string{
		"ara", "bul", "listele", "göster", "aranır", "bulabilir", "lazım", "bakmak",
	}
	searchMarkers = []string{
		"arıyorum", "aramak", "var mı", "varmı", "var mi", "varmi",
		"ilanları", "ilanlar", "ilanlara",
	}
	priceInquiries = []string{"fiyat araştır", "fiyat bak", "ne kadar", "piyasa fiyatı"}

	wordRe = regexp.MustCompile(`[A-Za-zÇĞİÖŞÜçğıöşü]+`)
)

const greetingMaxWords = 2

type message struct {
	lower    string
	words    []string
	hasPrice bool
}

// rule is one step of the cascade. A nil Result means "no match, continue".
type rule struct {
	name string
	eval func(m message) *Result
}

// rules in matching priority order.
var rules = []rule{
	{name: "greeting", eval: matchGreeting},
	{name: "small_talk", eval: matchSmallTalk},
	{name: "cancel", eval: matchCancel},
	{name: "commit", eval: matchCommit},
	{name: "create_listing", eval: matchCreate},
	{name: "search", eval: matchSearch},
	{name: "listing_packet", eval: matchListingPacket},
	{name: "bare_price", eval: matchBarePrice},
}

// Classify maps a message to an intent. Blank input is UNKNOWN at zero
// confidence; anything unmatched falls through to UNKNOWN at 0.4.
func Classify(text string) Result {
	lower := strings.TrimSpace(textnorm.Lower(text))
	if lower == "" {
		return Result{Intent: domain.IntentUnknown, Confidence: 0.0}
	}

	_, hasPrice := extract.Price(lower)
	m := message{
		lower:    lower,
		words:    wordRe.FindAllString(lower, -1),
		hasPrice: hasPrice,
	}

	for _, r := range rules {
		if res := r.eval(m); res != nil {
			return *res
		}
	}
	return Result{Intent: domain.IntentUnknown, Confidence: confUnknown}
}

func matchGreeting(m message) *Result {
	for _, token := range greetingTokens {
		if m.lower == token || strings.HasPrefix(m.lower, token+" ") {
			if len(strings.Fields(m.lower)) <= greetingMaxWords && !m.hasPrice {
				return &Result{Intent: domain.IntentSmallTalk, Confidence: confGreeting}
			}
			break
		}
	}
	return nil
}

func matchSmallTalk(m message) *Result {
	for _, token := range smallTalkTokens {
		if strings.Contains(m.lower, token) && !m.hasPrice {
			return &Result{Intent: domain.IntentSmallTalk, Confidence: confSmallTalk}
		}
	}
	return nil
}

func matchCancel(m message) *Result {
	if containsAny(m.lower, cancelTokens) {
		return &Result{Intent: domain.IntentCancel, Confidence: confCancel}
	}
	return nil
}

func matchCommit(m message) *Result {
	if containsAny(m.lower, commitTokens) {
		return &Result{Intent: domain.IntentCommitRequest, Confidence: confCommit}
	}
	return nil
}

func matchCreate(m message) *Result {
	if containsAny(m.lower, createPatterns) {
		return &Result{Intent: domain.IntentCreateListing, Confidence: confCreate}
	}
	return nil
}

func matchSearch(m message) *Result {
	confidence := 0.0
	// Verbs match as whole words only; "bul" inside "istanbul" or "ara"
	// inside "arama dışı" words must not trigger a search.
	if hasWord(m.words, searchVerbs) {
		confidence = confSearchVerb
	}
	// "istiyorum" alone is a weak search signal; create patterns already had
	// their chance upstream.
	if confidence == 0 && strings.Contains(m.lower, "istiyorum") {
		confidence = confSearchVerb
	}
	if containsAny(m.lower, searchMarkers) && confSearchMarker > confidence {
		confidence = confSearchMarker
	}
	if containsAny(m.lower, priceInquiries) {
		return &Result{Intent: domain.IntentSearchListing, Confidence: confPriceInquiry}
	}
	if confidence > 0 {
		return &Result{Intent: domain.IntentSearchListing, Confidence: confidence}
	}
	return nil
}

// matchListingPacket catches messages that read like a listing without a
// verb: a detectable price plus either a location-like tail or at least two
// generic words.
func matchListingPacket(m message) *Result {
	if !m.hasPrice {
		return nil
	}
	_, hasLocation := extract.Location(m.lower)
	hasWords := len(m.words) >= 2
	if hasLocation || hasWords {
		return &Result{Intent: domain.IntentAmbiguous, Confidence: confListingPacket}
	}
	return nil
}

func matchBarePrice(m message) *Result {
	if m.hasPrice {
		return &Result{Intent: domain.IntentAmbiguous, Confidence: confBarePrice}
	}
	return nil
}

func containsAny(haystack string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func hasWord(words, candidates []string) bool {
	for _, w := range words {
		for _, c := range candidates {
			if w == c {
				return true
			}
		}
	}
	return false
}
