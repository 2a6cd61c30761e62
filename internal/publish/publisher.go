// Package publish turns a completed draft into a live listing: validation,
// final composition, persistence, then best-effort billing and bookkeeping.
package publish

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pazarglobal/agent/internal/audit"
	"github.com/pazarglobal/agent/internal/compose"
	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/drafts"
	"github.com/pazarglobal/agent/internal/keywords"
	"github.com/pazarglobal/agent/internal/logging"
)

const (
	// PublishCost is the credit price of one listing.
	PublishCost = 55

	// DefaultCategory receives listings whose category cannot be resolved.
	DefaultCategory = "Diğer"

	maxTitleLen       = 120
	maxDescriptionLen = 2000

	defaultCondition = "used"
)

// MissingFieldsError reports which required fields block publishing. The
// draft is left untouched when this is returned.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "draft is missing required fields: " + strings.Join(e.Fields, ", ")
}

// CategoryNormalizer resolves user category text to a taxonomy id.
type CategoryNormalizer func(text string) (string, bool)

// ListingStore persists published listings.
type ListingStore interface {
	Insert(ctx context.Context, listing *domain.Listing) error
}

// CreditStore reads and writes profile credit balances.
type CreditStore interface {
	GetCredits(ctx context.Context, userID string) (int, error)
	UpdateCredits(ctx context.Context, userID string, credits int) error
}

// DraftFinalizer marks drafts published.
type DraftFinalizer interface {
	MarkPublished(ctx context.Context, draftID string) error
}

// Publisher executes the publish transaction.
type Publisher struct {
	listings   ListingStore
	credits    CreditStore
	finalizer  DraftFinalizer
	keywordGen *keywords.Generator
	normalize  CategoryNormalizer
	recorder   *audit.Recorder
	log        logging.Logger
}

// NewPublisher wires the publisher.
func NewPublisher(
	listings ListingStore,
	credits CreditStore,
	finalizer DraftFinalizer,
	keywordGen *keywords.Generator,
	normalize CategoryNormalizer,
	recorder *audit.Recorder,
	log logging.Logger,
) *Publisher {
	return &Publisher{
		listings:   listings,
		credits:    credits,
		finalizer:  finalizer,
		keywordGen: keywordGen,
		normalize:  normalize,
		recorder:   recorder,
		log:        log,
	}
}

// Publish validates the draft, composes the final listing, inserts it, then
// runs the best-effort follow-ups: credit deduction, audit, draft state.
// Only validation and the listing insert can fail the call.
func (p *Publisher) Publish(ctx context.Context, draft *domain.Draft) (*domain.Listing, error) {
	data := draft.ListingData

	if missing := drafts.MissingFields(data); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	price, err := priceValue(data)
	if err != nil {
		return nil, err
	}

	categoryID, ok := p.normalize(data.Text(domain.FieldCategory))
	if !ok {
		categoryID = DefaultCategory
	}

	title := compose.EnrichTitle(data.String(domain.FieldTitle), data, draft.Vision)
	title = truncateRunes(title, maxTitleLen)

	description := data.String(domain.FieldDescription)
	if description == "" {
		description = compose.Description(data, draft.Vision)
	}
	description = truncateRunes(description, maxDescriptionLen)
	if description == "" {
		description = title
	}

	condition := data.String(domain.FieldCondition)
	if condition == "" {
		condition = defaultCondition
	}

	kws := p.keywordGen.Generate(ctx, keywords.Input{
		Title:       title,
		Category:    categoryID,
		Description: description,
		Condition:   condition,
	})

	listing := &domain.Listing{
		UserID:      draft.UserID,
		Title:       title,
		Description: description,
		Category:    categoryID,
		Price:       price,
		Condition:   condition,
		Location:    data.String(domain.FieldLocation),
		Images:      draft.MediaURLs(),
		Status:      domain.ListingStatusActive,
		Metadata: domain.JSONMap{
			"source":        "agent",
			"draft_id":      draft.ID,
			"published_at":  time.Now().UTC().Format(time.RFC3339),
			"keywords":      kws,
			"keywords_text": keywords.Text(kws),
		},
		ViewCount: 0,
	}

	if err := p.listings.Insert(ctx, listing); err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}

	p.recorder.Record(ctx, draft.UserID, audit.EventListingPublished, domain.JSONMap{
		"listing_id": listing.ID,
		"draft_id":   draft.ID,
		"category":   categoryID,
	})

	p.deductCredits(ctx, draft.UserID, listing.ID)

	if err := p.finalizer.MarkPublished(ctx, draft.ID); err != nil {
		p.log.Warn("failed to mark draft published",
			logging.String("draft_id", draft.ID),
			logging.Error(err))
	}

	return listing, nil
}

// deductCredits charges the publish cost, flooring the balance at zero. The
// listing stays live whatever happens here; failures only get audited.
func (p *Publisher) deductCredits(ctx context.Context, userID, listingID string) {
	balance, err := p.credits.GetCredits(ctx, userID)
	if err == nil {
		next := balance - PublishCost
		if next < 0 {
			next = 0
		}
		err = p.credits.UpdateCredits(ctx, userID, next)
		if err == nil {
			p.recorder.Record(ctx, userID, audit.EventCreditDeducted, domain.JSONMap{
				"listing_id": listingID,
				"amount":     PublishCost,
				"balance":    next,
			})
			return
		}
	}

	p.log.Warn("credit deduction failed",
		logging.String("user_id", userID),
		logging.String("listing_id", listingID),
		logging.Error(err))
	p.recorder.Record(ctx, userID, audit.EventCreditDeductionFailed, domain.JSONMap{
		"listing_id": listingID,
		"amount":     PublishCost,
		"error":      err.Error(),
	})
}

func priceValue(data domain.JSONMap) (float64, error) {
	switch v := data[domain.FieldPrice].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("unparseable price %q", v)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported price type %T", v)
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
