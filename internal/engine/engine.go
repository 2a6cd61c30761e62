// Package engine routes inbound conversation messages: it classifies intent,
// drives the draft slot-filling flow, and produces the reply for the client.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pazarglobal/agent/internal/audit"
	"github.com/pazarglobal/agent/internal/compose"
	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/drafts"
	"github.com/pazarglobal/agent/internal/extract"
	"github.com/pazarglobal/agent/internal/intent"
	"github.com/pazarglobal/agent/internal/logging"
	"github.com/pazarglobal/agent/internal/metrics"
	"github.com/pazarglobal/agent/internal/publish"
	"github.com/pazarglobal/agent/internal/search"
	"github.com/pazarglobal/agent/internal/textnorm"
)

// ErrUserRequired is returned when a flow needs a persistent draft but the
// request carries no valid user id.
var ErrUserRequired = errors.New("a valid user id is required for this action")

// Response intent labels exposed to clients.
const (
	ReplySmallTalk            = "small_talk"
	ReplySearchCompleted      = "search_completed"
	ReplyIntentClarify        = "intent_clarify"
	ReplyDraftCollect         = "draft_collect"
	ReplyDescriptionCollect   = "description_collect"
	ReplyDraftPreview         = "draft_preview"
	ReplyConfirmationRequired = "confirmation_required"
	ReplyCompletionPublished  = "completion_published"
	ReplyCompletionCancelled  = "completion_cancelled"
	ReplyLLMFallback          = "llm_fallback"
	ReplyUnknown              = "unknown"
)

// recentDraftWindow bounds how old an active draft may be for a bare
// location message to count as slot filling rather than a search.
const recentDraftWindow = 30 * time.Minute

const (
	cancelReply = "✅ İşlem iptal edildi. Yeni bir işlem için mesaj gönderebilirsiniz."

	commitGuardReply = "Yayınlamak için lütfen 'onaylıyorum' yazın."
	noDraftReply     = "Yayınlanacak aktif bir taslak bulamadım. Önce ilan bilgilerini paylaşır mısınız?"

	clarifyReply = "🤔 Bununla ne yapmak istersiniz?\n\n" +
		"1️⃣ İlan vermek için 'ilan ver' veya 'yayınla' yazın\n" +
		"2️⃣ Benzer ilanları aramak için 'ara' veya 'bul' yazın"

	citySearchHeader     = "🔎 Şehir filtresi olarak algıladım, ilgili ilanlara bakıyorum."
	fallbackSearchHeader = "🔎 Bunu arama talebi olarak algıladım, benzer ilanlara bakıyorum."

	unknownReply = "İlan vermek mi istiyorsunuz, yoksa ilan aramak mı? ('ilan ver' / 'ilan ara' yazabilirsiniz)"

	llmSystemPrompt = "Sen PazarGlobal ilan asistanısın. Kısa ve net cevap ver.\n" +
		"Kullanıcı ilan vermek veya ilan aramak isteyebilir. Emin değilsen tek bir netleştirici soru sor."
)

// Request is one inbound conversation message.
type Request struct {
	UserID       string
	Phone        string
	Message      string
	MediaPaths   []string
	DraftID      string
	SessionToken string
}

// Response is the engine's reply to the client.
type Response struct {
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	DraftID   string `json:"draft_listing_id,omitempty"`
	ListingID string `json:"listing_id,omitempty"`
}

// ProfileReader resolves identity fields from the user profile; satisfied by
// database.ProfileRepository.
type ProfileReader interface {
	GetDisplayName(ctx context.Context, userID string) (string, error)
	GetPhone(ctx context.Context, userID string) (string, error)
}

// Searcher runs listing searches; satisfied by search.Service.
type Searcher interface {
	Search(ctx context.Context, query string) (search.Payload, error)
}

// Publisher publishes completed drafts; satisfied by publish.Publisher.
type Publisher interface {
	Publish(ctx context.Context, draft *domain.Draft) (*domain.Listing, error)
}

// Chatter is the model fallback; satisfied by llm.Client.
type Chatter interface {
	Enabled() bool
	Chat(ctx context.Context, system, user string) (string, error)
}

// Engine is the conversation router.
type Engine struct {
	drafts    *drafts.Service
	searcher  Searcher
	publisher Publisher
	profiles  ProfileReader
	chatter   Chatter
	recorder  *audit.Recorder
	metrics   *metrics.Metrics
	log       logging.Logger
}

// New wires the engine.
func New(
	draftSvc *drafts.Service,
	searcher Searcher,
	publisher Publisher,
	profiles ProfileReader,
	chatter Chatter,
	recorder *audit.Recorder,
	m *metrics.Metrics,
	log logging.Logger,
) *Engine {
	return &Engine{
		drafts:    draftSvc,
		searcher:  searcher,
		publisher: publisher,
		profiles:  profiles,
		chatter:   chatter,
		recorder:  recorder,
		metrics:   m,
		log:       log,
	}
}

// Run processes one message end to end. Every message, whatever its outcome,
// leaves one audit row behind.
func (e *Engine) Run(ctx context.Context, req Request) (Response, error) {
	result := intent.Classify(req.Message)
	e.metrics.MessagesTotal.WithLabelValues(string(result.Intent)).Inc()
	e.log.Info("message classified",
		logging.String("intent", string(result.Intent)),
		logging.Float64("confidence", result.Confidence),
		logging.String("user_id", req.UserID))

	resp, err := e.dispatch(ctx, req, result.Intent)
	e.recordMessage(ctx, req, result.Intent, resp, err)
	return resp, err
}

func (e *Engine) dispatch(ctx context.Context, req Request, intentName domain.Intent) (Response, error) {
	switch intentName {
	case domain.IntentSmallTalk:
		return e.handleSmallTalk(ctx, req), nil
	case domain.IntentSearchListing:
		return e.handleSearch(ctx, req.Message, "")
	case domain.IntentCancel:
		return e.handleCancel(ctx, req)
	case domain.IntentCommitRequest:
		return e.handleCommit(ctx, req)
	case domain.IntentAmbiguous:
		return e.handleAmbiguous(ctx, req)
	default:
		return e.handleDraftFlow(ctx, req, intentName)
	}
}

// recordMessage appends the per-message audit row: the resolved action, the
// request data, and the outcome. The phone comes from the request or, when
// absent, from the user's profile.
func (e *Engine) recordMessage(ctx context.Context, req Request, resolved domain.Intent, resp Response, runErr error) {
	status := resp.Intent
	if runErr != nil {
		status = "error"
	}

	phone := req.Phone
	if phone == "" && isUUID(req.UserID) {
		if p, err := e.profiles.GetPhone(ctx, req.UserID); err == nil {
			phone = NormalizePhone(p)
		}
	}

	payload := domain.JSONMap{"message": req.Message}
	if req.SessionToken != "" {
		payload["session_token"] = req.SessionToken
	}
	if len(req.MediaPaths) > 0 {
		payload["media_paths"] = req.MediaPaths
	}
	if resp.DraftID != "" {
		payload["draft_id"] = resp.DraftID
	}
	if resp.ListingID != "" {
		payload["listing_id"] = resp.ListingID
	}

	e.recorder.RecordEntry(ctx, domain.AuditEntry{
		UserID:  req.UserID,
		Phone:   phone,
		Event:   string(resolved),
		Status:  status,
		Payload: payload,
	})
}

func (e *Engine) handleSmallTalk(ctx context.Context, req Request) Response {
	greeting := "Selam"
	if isUUID(req.UserID) {
		if name, err := e.profiles.GetDisplayName(ctx, req.UserID); err == nil && name != "" {
			greeting = "Selam " + name
		}
	}
	reply := greeting + "! PazarGlobal'e hoş geldiniz. Size nasıl yardımcı olabilirim? " +
		"İlan vermek ya da ilan aramak için yazabilirsiniz."
	return Response{Reply: reply, Intent: ReplySmallTalk}
}

func (e *Engine) handleSearch(ctx context.Context, query, header string) (Response, error) {
	payload, err := e.searcher.Search(ctx, query)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}
	e.metrics.SearchesTotal.Inc()

	reply := search.FormatReply(payload)
	if header != "" {
		reply = header + "\n\n" + search.PayloadBlock(payload)
	}
	return Response{Reply: reply, Intent: ReplySearchCompleted}, nil
}

func (e *Engine) handleCancel(ctx context.Context, req Request) (Response, error) {
	if isUUID(req.UserID) {
		cancelled, err := e.drafts.Cancel(ctx, req.UserID)
		if err != nil {
			return Response{}, fmt.Errorf("cancel drafts: %w", err)
		}
		if cancelled > 0 {
			e.recorder.Record(ctx, req.UserID, audit.EventDraftCancelled, domain.JSONMap{
				"cancelled": cancelled,
			})
		}
	}
	return Response{Reply: cancelReply, Intent: ReplyCompletionCancelled}, nil
}

func (e *Engine) handleCommit(ctx context.Context, req Request) (Response, error) {
	if !isUUID(req.UserID) {
		return Response{}, ErrUserRequired
	}

	// The commit vocabulary is wide ("paylaş" matches too); publishing only
	// proceeds on an explicit confirmation token.
	lower := textnorm.Lower(req.Message)
	if !strings.Contains(lower, "onay") && !strings.Contains(lower, "yayın") {
		resp := Response{Reply: commitGuardReply, Intent: ReplyConfirmationRequired}
		// Point the client at the pending draft so it can re-show the preview.
		if draft, err := e.resolveDraft(ctx, req); err == nil && draft != nil {
			resp.DraftID = draft.ID
		}
		return resp, nil
	}

	draft, err := e.resolveDraft(ctx, req)
	if err != nil {
		return Response{}, err
	}
	if draft == nil {
		return Response{Reply: noDraftReply, Intent: ReplyUnknown}, nil
	}

	listing, err := e.publisher.Publish(ctx, draft)
	if err != nil {
		var missing *publish.MissingFieldsError
		if errors.As(err, &missing) {
			return Response{
				Reply:   drafts.NextQuestion(missing.Fields),
				Intent:  ReplyDraftCollect,
				DraftID: draft.ID,
			}, nil
		}
		e.metrics.PublishFailures.Inc()
		return Response{}, fmt.Errorf("publish draft %s: %w", draft.ID, err)
	}

	e.metrics.PublishesTotal.Inc()
	return Response{
		Reply:     fmt.Sprintf("✅ İlan yayınlandı!\nID: %s", listing.ID),
		Intent:    ReplyCompletionPublished,
		DraftID:   draft.ID,
		ListingID: listing.ID,
	}, nil
}

func (e *Engine) handleAmbiguous(ctx context.Context, req Request) (Response, error) {
	patch := extract.Fields(req.Message)

	var draftID string
	if isUUID(req.UserID) && (len(patch) > 0 || len(req.MediaPaths) > 0) {
		// Persist what we understood so a follow-up "ilan ver" picks it up.
		// Best effort: the clarify reply goes out regardless.
		if draft, err := e.drafts.GetOrCreate(ctx, req.UserID); err == nil {
			if err := e.drafts.StoreMediaURLs(ctx, draft, req.MediaPaths); err != nil {
				e.log.Warn("media store failed",
					logging.String("draft_id", draft.ID), logging.Error(err))
			}
			if err := e.drafts.PatchFields(ctx, draft, patch); err == nil {
				draftID = draft.ID
			}
		}
	}

	reply := clarifyReply
	if summary := patchSummary(patch); summary != "" {
		reply = "📝 Aldığım bilgiler: " + summary + "\n\n" + clarifyReply
	}
	return Response{Reply: reply, Intent: ReplyIntentClarify, DraftID: draftID}, nil
}

// handleDraftFlow covers CREATE_LISTING plus the UNKNOWN paths that turn out
// to be slot filling or search in disguise.
func (e *Engine) handleDraftFlow(ctx context.Context, req Request, intentName domain.Intent) (Response, error) {
	patch := extract.Fields(req.Message)

	if intentName == domain.IntentUnknown {
		if res, handled, err := e.unknownShortcuts(ctx, req, patch); handled {
			return res, err
		}
	}

	if !isUUID(req.UserID) {
		if intentName == domain.IntentUnknown {
			return e.llmFallback(ctx, req.Message), nil
		}
		return Response{}, ErrUserRequired
	}

	draft, err := e.drafts.GetOrCreate(ctx, req.UserID)
	if err != nil {
		return Response{}, fmt.Errorf("load draft: %w", err)
	}

	// Notes capture must run before new-listing detection: a free-text answer
	// to the detail question often extracts a bogus title that would
	// otherwise discard the draft it belongs to.
	patch = e.captureDescriptionNotes(draft, patch, req.Message)

	if drafts.ShouldSupersede(draft, patch) {
		if _, err := e.drafts.Cancel(ctx, req.UserID); err != nil {
			return Response{}, fmt.Errorf("supersede draft: %w", err)
		}
		e.recorder.Record(ctx, req.UserID, audit.EventDraftSuperseded, domain.JSONMap{
			"old_draft_id": draft.ID,
			"old_title":    draft.ListingData.String(domain.FieldTitle),
			"new_title":    patch.String(domain.FieldTitle),
		})
		if draft, err = e.drafts.GetOrCreate(ctx, req.UserID); err != nil {
			return Response{}, fmt.Errorf("recreate draft: %w", err)
		}
	}

	if err := e.drafts.StoreMediaURLs(ctx, draft, req.MediaPaths); err != nil {
		e.log.Warn("media store failed",
			logging.String("draft_id", draft.ID), logging.Error(err))
	}

	if err := e.drafts.PatchFields(ctx, draft, patch); err != nil {
		return Response{}, err
	}

	if missing := drafts.MissingFields(draft.ListingData); len(missing) > 0 {
		return Response{
			Reply:   drafts.NextQuestion(missing),
			Intent:  ReplyDraftCollect,
			DraftID: draft.ID,
		}, nil
	}

	data := draft.ListingData

	// Ask the category-specific detail question exactly once.
	if !data.Bool(domain.FieldDescriptionPending) && data.String(domain.FieldDescriptionNotes) == "" {
		if q := compose.DescriptionQuestion(data.String(domain.FieldCategory), data); q != "" {
			if err := e.drafts.PatchFields(ctx, draft, domain.JSONMap{
				domain.FieldDescriptionPending: true,
			}); err != nil {
				return Response{}, err
			}
			return Response{
				Reply:   q,
				Intent:  ReplyDescriptionCollect,
				DraftID: draft.ID,
			}, nil
		}
	}

	finalPatch := domain.JSONMap{
		domain.FieldTitle:              compose.EnrichTitle(data.String(domain.FieldTitle), data, draft.Vision),
		domain.FieldDescription:        compose.Description(data, draft.Vision),
		domain.FieldDescriptionPending: false,
	}
	if err := e.drafts.PatchFields(ctx, draft, finalPatch); err != nil {
		return Response{}, err
	}

	return Response{
		Reply:   drafts.FormatPreview(draft.ListingData),
		Intent:  ReplyDraftPreview,
		DraftID: draft.ID,
	}, nil
}

// AttachMedia stores uploaded media references on the user's active draft,
// creating one if needed, and returns the draft id.
func (e *Engine) AttachMedia(ctx context.Context, userID string, urls []string) (string, error) {
	if !isUUID(userID) {
		return "", ErrUserRequired
	}
	draft, err := e.drafts.GetOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load draft: %w", err)
	}
	if err := e.drafts.StoreMediaURLs(ctx, draft, urls); err != nil {
		return "", err
	}
	return draft.ID, nil
}

// unknownShortcuts handles UNKNOWN messages that are really something else:
// a bare city continuing a fresh draft or filtering a search, a product name
// that reads like a query, or nothing extractable at all.
func (e *Engine) unknownShortcuts(ctx context.Context, req Request, patch domain.JSONMap) (Response, bool, error) {
	hasTitle := patch.String(domain.FieldTitle) != ""
	hasCategory := patch.String(domain.FieldCategory) != ""
	hasLocation := patch.String(domain.FieldLocation) != ""
	_, hasPrice := patch[domain.FieldPrice]

	locationOnly := hasLocation && !hasTitle && !hasCategory && !hasPrice
	if locationOnly {
		if isUUID(req.UserID) {
			draft, err := e.drafts.GetActive(ctx, req.UserID)
			if err != nil {
				return Response{}, true, err
			}
			if draft != nil &&
				time.Since(draft.UpdatedAt) <= recentDraftWindow &&
				draft.ListingData.Text(domain.FieldLocation) == "" {
				// A fresh draft is waiting for its location; keep slot filling.
				return Response{}, false, nil
			}
		}
		res, err := e.handleSearch(ctx, req.Message, citySearchHeader)
		return res, true, err
	}

	if (hasTitle || hasCategory) && !hasPrice && !hasLocation {
		if isUUID(req.UserID) {
			draft, err := e.drafts.GetActive(ctx, req.UserID)
			if err != nil {
				return Response{}, true, err
			}
			if draft != nil && time.Since(draft.UpdatedAt) <= recentDraftWindow &&
				draft.ListingData.Bool(domain.FieldDescriptionPending) {
				// The draft is waiting for its detail answer; not a search.
				return Response{}, false, nil
			}
		}
		res, err := e.handleSearch(ctx, req.Message, fallbackSearchHeader)
		return res, true, err
	}

	if len(patch) == 0 {
		return e.llmFallback(ctx, req.Message), true, nil
	}
	return Response{}, false, nil
}

// captureDescriptionNotes treats a free-text answer to the pending detail
// question as description notes. Only an explicit price edit bypasses the
// capture; title, category and location extracted from free prose are too
// unreliable to count as field edits here. Attribute mentions in the answer
// still merge into the draft.
func (e *Engine) captureDescriptionNotes(draft *domain.Draft, patch domain.JSONMap, message string) domain.JSONMap {
	if !draft.ListingData.Bool(domain.FieldDescriptionPending) {
		return patch
	}
	if _, ok := patch[domain.FieldPrice]; ok {
		return patch
	}

	notes := domain.JSONMap{
		domain.FieldDescriptionNotes:   strings.TrimSpace(message),
		domain.FieldDescriptionPending: false,
	}
	if attrs, ok := patch[domain.FieldAttributes]; ok {
		notes[domain.FieldAttributes] = attrs
	}
	return notes
}

func (e *Engine) llmFallback(ctx context.Context, message string) Response {
	if e.chatter != nil && e.chatter.Enabled() {
		e.metrics.LLMFallbacks.Inc()
		reply, err := e.chatter.Chat(ctx, llmSystemPrompt, message)
		if err == nil && strings.TrimSpace(reply) != "" {
			return Response{Reply: strings.TrimSpace(reply), Intent: ReplyLLMFallback}
		}
		if err != nil {
			e.metrics.LLMFailures.Inc()
			e.log.Warn("llm fallback failed", logging.Error(err))
		}
	}
	return Response{Reply: unknownReply, Intent: ReplyUnknown}
}

// resolveDraft prefers the explicitly referenced draft, falling back to the
// user's active one.
func (e *Engine) resolveDraft(ctx context.Context, req Request) (*domain.Draft, error) {
	if isUUID(req.DraftID) {
		draft, err := e.drafts.GetByID(ctx, req.DraftID)
		if err != nil {
			return nil, err
		}
		if draft != nil && draft.UserID == req.UserID && draft.State == domain.DraftStateDiscovery {
			return draft, nil
		}
	}
	return e.drafts.GetActive(ctx, req.UserID)
}

func patchSummary(patch domain.JSONMap) string {
	var parts []string
	if title := patch.String(domain.FieldTitle); title != "" {
		parts = append(parts, title)
	}
	if price := patch.Text(domain.FieldPrice); price != "" {
		parts = append(parts, price+" TL")
	}
	if loc := patch.String(domain.FieldLocation); loc != "" {
		parts = append(parts, loc)
	}
	return strings.Join(parts, " · ")
}

func isUUID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NormalizePhone strips a phone number down to its digits.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
