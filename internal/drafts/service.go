// Package drafts implements the slot-filling draft lifecycle: one active
// draft per user, patched field by field until the required set is complete.
package drafts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/logging"
	"github.com/pazarglobal/agent/internal/textnorm"
)

// Store is the persistence dependency; satisfied by database.DraftRepository.
type Store interface {
	Create(ctx context.Context, userID string) (*domain.Draft, error)
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	GetActive(ctx context.Context, userID string) (*domain.Draft, error)
	UpdateListingData(ctx context.Context, id string, data domain.JSONMap) (time.Time, error)
	UpdateImages(ctx context.Context, id string, images domain.JSONMap) error
	UpdateState(ctx context.Context, id, state string) error
	CancelActiveByUser(ctx context.Context, userID string) (int64, error)
}

// Service manages draft state transitions.
type Service struct {
	store Store
	log   logging.Logger
}

// NewService wires the draft service.
func NewService(store Store, log logging.Logger) *Service {
	return &Service{store: store, log: log}
}

// GetOrCreate returns the user's active draft, creating one when none exists.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domain.Draft, error) {
	draft, err := s.store.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}

	draft, err = s.store.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.log.Info("draft created",
		logging.String("draft_id", draft.ID),
		logging.String("user_id", userID))
	return draft, nil
}

// GetByID loads one draft, nil when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	return s.store.GetByID(ctx, id)
}

// GetActive loads the user's active draft, nil when absent.
func (s *Service) GetActive(ctx context.Context, userID string) (*domain.Draft, error) {
	return s.store.GetActive(ctx, userID)
}

// PatchFields merges the patch into the draft's listing data and persists the
// result. Top-level keys overwrite; the nested attributes map merges key by
// key so earlier attributes survive later messages. The draft is mutated in
// place, including its updated_at.
func (s *Service) PatchFields(ctx context.Context, draft *domain.Draft, patch domain.JSONMap) error {
	if len(patch) == 0 {
		return nil
	}

	merged := MergeListingData(draft.ListingData, patch)

	updatedAt, err := s.store.UpdateListingData(ctx, draft.ID, merged)
	if err != nil {
		return fmt.Errorf("patch draft %s: %w", draft.ID, err)
	}

	draft.ListingData = merged
	draft.UpdatedAt = updatedAt
	return nil
}

// MergeListingData applies a patch over existing listing data without
// mutating either input. Attributes merge recursively one level deep.
func MergeListingData(existing, patch domain.JSONMap) domain.JSONMap {
	merged := make(domain.JSONMap, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		if k != domain.FieldAttributes {
			merged[k] = v
			continue
		}
		attrs := make(domain.JSONMap)
		for ak, av := range existing.Map(domain.FieldAttributes) {
			attrs[ak] = av
		}
		for ak, av := range patch.Map(domain.FieldAttributes) {
			attrs[ak] = av
		}
		merged[domain.FieldAttributes] = map[string]any(attrs)
	}
	return merged
}

// StoreMediaURLs appends media references to the draft, deduplicated while
// preserving arrival order.
func (s *Service) StoreMediaURLs(ctx context.Context, draft *domain.Draft, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	existing := draft.MediaURLs()
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(urls))
	for _, u := range existing {
		seen[u] = struct{}{}
		merged = append(merged, u)
	}
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		merged = append(merged, u)
	}

	images := make(domain.JSONMap, len(draft.Images))
	for k, v := range draft.Images {
		images[k] = v
	}
	images["urls"] = merged

	if err := s.store.UpdateImages(ctx, draft.ID, images); err != nil {
		return fmt.Errorf("store media for draft %s: %w", draft.ID, err)
	}
	draft.Images = images
	return nil
}

// MarkPublished moves the draft to its published terminal state.
func (s *Service) MarkPublished(ctx context.Context, draftID string) error {
	return s.store.UpdateState(ctx, draftID, domain.DraftStatePublished)
}

// Cancel soft-cancels all of the user's active drafts and reports how many.
func (s *Service) Cancel(ctx context.Context, userID string) (int64, error) {
	return s.store.CancelActiveByUser(ctx, userID)
}

// MissingFields lists the required fields the draft still lacks, in the fixed
// required-field order. A field holding only whitespace counts as missing.
func MissingFields(data domain.JSONMap) []string {
	var missing []string
	for _, field := range domain.RequiredFields {
		if data.Text(field) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

var fieldQuestions = map[string]string{
	domain.FieldTitle:    "Ürün başlığını yazar mısınız? (örn: iPhone 13 Pro 256GB)",
	domain.FieldCategory: "Hangi kategori? (örn: Elektronik, Otomotiv, Emlak)",
	domain.FieldPrice:    "Fiyatı kaç TL yazmak istersiniz?",
	domain.FieldLocation: "Konum (şehir/ilçe) neresi?",
}

const fallbackQuestion = "Biraz daha detay yazar mısınız?"

// NextQuestion returns the prompt for the first missing required field.
func NextQuestion(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	if q, ok := fieldQuestions[missing[0]]; ok {
		return q
	}
	return fallbackQuestion
}

// FormatPreview renders the confirmation card shown before publish.
func FormatPreview(data domain.JSONMap) string {
	var b strings.Builder
	b.WriteString("🧾 Taslak Önizleme\n")
	b.WriteString("• Başlık: " + data.Text(domain.FieldTitle) + "\n")
	b.WriteString("• Kategori: " + data.Text(domain.FieldCategory) + "\n")
	b.WriteString("• Fiyat: " + data.Text(domain.FieldPrice) + " ₺\n")
	b.WriteString("• Konum: " + data.Text(domain.FieldLocation) + "\n")

	condition := data.Text(domain.FieldCondition)
	if condition == "" {
		condition = "2.el"
	}
	b.WriteString("• Durum: " + condition + "\n")

	if desc := data.Text(domain.FieldDescription); desc != "" {
		b.WriteString("• Açıklama: " + desc + "\n")
	}

	b.WriteString("\nYayınlamak isterseniz 'onaylıyorum' yazın. " +
		"Değiştirmek isterseniz yeni bilgiyi yazmanız yeterli.")
	return b.String()
}

// ShouldSupersede reports whether an incoming title describes a different
// product than the draft's current one, which discards the old draft rather
// than silently mixing two listings.
func ShouldSupersede(draft *domain.Draft, patch domain.JSONMap) bool {
	newTitle := patch.String(domain.FieldTitle)
	oldTitle := draft.ListingData.String(domain.FieldTitle)
	if newTitle == "" || oldTitle == "" {
		return false
	}
	return textnorm.Fold(newTitle) != textnorm.Fold(oldTitle)
}
