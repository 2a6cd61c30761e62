// Package search turns a free-text query into a filtered listing lookup:
// price-range and city phrases become filters, the remaining tokens become
// keywords. Results are cached briefly in Redis keyed by the folded query.
package search

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pazarglobal/agent/internal/database"
	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/extract"
	"github.com/pazarglobal/agent/internal/logging"
	"github.com/pazarglobal/agent/internal/textnorm"
)

const (
	// MaxKeywords caps how many query tokens reach the SQL filter.
	MaxKeywords = 4

	cacheTTL       = 5 * time.Minute
	cacheKeyPrefix = "agent:search:"
)

// Payload is the machine-readable block appended to search replies.
type Payload struct {
	Results []domain.ListingSummary `json:"results"`
	Query   string                  `json:"query"`
	TS      string                  `json:"ts"`
}

// Lister is the lookup dependency; satisfied by database.ListingRepository.
type Lister interface {
	Search(ctx context.Context, filter database.SearchFilter) ([]domain.ListingSummary, error)
}

// Service executes listing searches.
type Service struct {
	lister Lister
	cache  *redis.Client
	log    logging.Logger
}

// NewService wires the search service. A nil cache disables caching.
func NewService(lister Lister, cache *redis.Client, log logging.Logger) *Service {
	return &Service{lister: lister, cache: cache, log: log}
}

// queryNoise are tokens that carry search intent but no product meaning.
var queryNoise = map[string]struct{}{
	"ara": {}, "bul": {}, "ariyorum": {}, "aramak": {}, "arama": {},
	"listele": {}, "goster": {}, "lazim": {}, "istiyorum": {}, "arar": {},
	"misin": {}, "var": {}, "mi": {}, "mu": {}, "ilan": {}, "ilanlari": {},
	"ilanlar": {}, "ilanlara": {}, "satilik": {}, "ikinci": {}, "el": {},
	"bir": {}, "bana": {}, "bi": {}, "tl": {}, "lira": {}, "alti": {},
	"altinda": {}, "ustu": {}, "ustunde": {}, "bin": {}, "fiyat": {},
	"butce": {}, "kadar": {}, "en": {}, "fazla": {}, "ve": {},
}

var digitTokenRe = regexp.MustCompile(`^\d+[kb]?$`)

// Keywords extracts up to MaxKeywords product tokens from a query: folded
// tokens minus search verbs, price words, bare numbers, and the detected
// city.
func Keywords(query string) []string {
	city, _ := extract.LocationHint(query)
	cityNorm := textnorm.Fold(city)

	var out []string
	for _, tok := range textnorm.Tokenize(query) {
		if len(out) >= MaxKeywords {
			break
		}
		if len([]rune(tok)) < 2 {
			continue
		}
		if _, noise := queryNoise[tok]; noise {
			continue
		}
		if digitTokenRe.MatchString(tok) {
			continue
		}
		if cityNorm != "" && tok == cityNorm {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// BuildFilter derives the SQL filter from a raw query.
func BuildFilter(query string) database.SearchFilter {
	minPrice, maxPrice := extract.PriceRange(query)
	city, _ := extract.LocationHint(query)
	return database.SearchFilter{
		Keywords: Keywords(query),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Location: city,
		Limit:    database.DefaultSearchLimit,
	}
}

// Search runs the query and returns the reply payload. Cache misses and
// write failures fall through to the database silently.
func (s *Service) Search(ctx context.Context, query string) (Payload, error) {
	key := cacheKeyPrefix + textnorm.Normalize(query)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached Payload
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	results, err := s.lister.Search(ctx, BuildFilter(query))
	if err != nil {
		return Payload{}, err
	}
	if results == nil {
		results = []domain.ListingSummary{}
	}

	payload := Payload{
		Results: results,
		Query:   strings.TrimSpace(query),
		TS:      time.Now().UTC().Format(time.RFC3339),
	}

	if s.cache != nil {
		if raw, jsonErr := json.Marshal(payload); jsonErr == nil {
			if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				s.log.Warn("search cache write failed", logging.Error(err))
			}
		}
	}
	return payload, nil
}

// PayloadBlock renders the machine-readable block clients parse out of the
// reply text.
func PayloadBlock(payload Payload) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = []byte(`{"results":[]}`)
	}
	return "[SEARCH_CACHE]" + string(raw)
}

// FormatReply renders the default user-facing search reply with the embedded
// payload block.
func FormatReply(payload Payload) string {
	return "🔎 Bulabildiğim ilanlar aşağıda. İsterseniz filtre de söyleyin (şehir, bütçe, kategori).\n\n" +
		PayloadBlock(payload)
}
