package drafts_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/drafts"
	"github.com/pazarglobal/agent/internal/logging"
)

// fakeStore is an in-memory drafts.Store.
type fakeStore struct {
	byID map[string]*domain.Draft
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: make(map[string]*domain.Draft)}
}

func (s *fakeStore) Create(_ context.Context, userID string) (*domain.Draft, error) {
	d := &domain.Draft{
		ID:          uuid.NewString(),
		UserID:      userID,
		State:       domain.DraftStateDiscovery,
		ListingData: domain.JSONMap{},
		Images:      domain.JSONMap{},
		Vision:      domain.JSONMap{},
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.byID[d.ID] = d
	return d, nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	return s.byID[id], nil
}

func (s *fakeStore) GetActive(_ context.Context, userID string) (*domain.Draft, error) {
	var latest *domain.Draft
	for _, d := range s.byID {
		if d.UserID != userID || d.State != domain.DraftStateDiscovery {
			continue
		}
		if latest == nil || d.UpdatedAt.After(latest.UpdatedAt) {
			latest = d
		}
	}
	return latest, nil
}

func (s *fakeStore) UpdateListingData(_ context.Context, id string, data domain.JSONMap) (time.Time, error) {
	d := s.byID[id]
	d.ListingData = data
	d.UpdatedAt = time.Now()
	return d.UpdatedAt, nil
}

func (s *fakeStore) UpdateImages(_ context.Context, id string, images domain.JSONMap) error {
	s.byID[id].Images = images
	return nil
}

func (s *fakeStore) UpdateState(_ context.Context, id, state string) error {
	s.byID[id].State = state
	return nil
}

func (s *fakeStore) CancelActiveByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, d := range s.byID {
		if d.UserID == userID && d.State == domain.DraftStateDiscovery {
			d.State = domain.DraftStateCancelled
			n++
		}
	}
	return n, nil
}

func newService(t *testing.T) (*drafts.Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return drafts.NewService(store, logging.NewNop()), store
}

func TestGetOrCreate_ReusesActiveDraft(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	userID := uuid.NewString()

	first, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	second, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreate_CancelledDraftDoesNotResurface(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	userID := uuid.NewString()

	first, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelled)

	second, err := svc.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPatchFields_MergesAttributes(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	draft, err := svc.GetOrCreate(ctx, uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, svc.PatchFields(ctx, draft, domain.JSONMap{
		domain.FieldTitle: "Ford Focus",
		domain.FieldAttributes: map[string]any{
			domain.AttrYear: "2018",
		},
	}))
	require.NoError(t, svc.PatchFields(ctx, draft, domain.JSONMap{
		domain.FieldAttributes: map[string]any{
			domain.AttrKM: "85000",
		},
	}))

	attrs := draft.Attributes()
	assert.Equal(t, "2018", attrs.String(domain.AttrYear), "earlier attribute must survive")
	assert.Equal(t, "85000", attrs.String(domain.AttrKM))
	assert.Equal(t, "Ford Focus", draft.ListingData.String(domain.FieldTitle))
}

func TestMergeListingData_Idempotent(t *testing.T) {
	existing := domain.JSONMap{
		domain.FieldTitle: "Ford Focus",
		domain.FieldAttributes: map[string]any{
			domain.AttrYear: "2018",
		},
	}
	patch := domain.JSONMap{
		domain.FieldPrice: 250000.0,
		domain.FieldAttributes: map[string]any{
			domain.AttrKM: "85000",
		},
	}

	once := drafts.MergeListingData(existing, patch)
	twice := drafts.MergeListingData(once, patch)

	assert.Equal(t, once, twice)
}

func TestMissingFields_FixedOrder(t *testing.T) {
	missing := drafts.MissingFields(domain.JSONMap{
		domain.FieldCategory: "Elektronik",
		domain.FieldLocation: "   ",
	})
	assert.Equal(t, []string{domain.FieldTitle, domain.FieldPrice, domain.FieldLocation}, missing)
}

func TestMissingFields_CompleteDraft(t *testing.T) {
	missing := drafts.MissingFields(domain.JSONMap{
		domain.FieldTitle:    "iPhone 13 Pro",
		domain.FieldCategory: "Elektronik",
		domain.FieldPrice:    25000.0,
		domain.FieldLocation: "İstanbul",
	})
	assert.Empty(t, missing)
}

func TestNextQuestion(t *testing.T) {
	q := drafts.NextQuestion([]string{domain.FieldPrice, domain.FieldLocation})
	assert.Equal(t, "Fiyatı kaç TL yazmak istersiniz?", q)
	assert.Empty(t, drafts.NextQuestion(nil))
}

func TestStoreMediaURLs_DedupesPreservingOrder(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	draft, err := svc.GetOrCreate(ctx, uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, svc.StoreMediaURLs(ctx, draft, []string{"a.jpg", "b.jpg"}))
	require.NoError(t, svc.StoreMediaURLs(ctx, draft, []string{"b.jpg", "c.jpg"}))

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, draft.MediaURLs())
}

func TestFormatPreview(t *testing.T) {
	preview := drafts.FormatPreview(domain.JSONMap{
		domain.FieldTitle:    "iPhone 13 Pro",
		domain.FieldCategory: "Elektronik",
		domain.FieldPrice:    25000.0,
		domain.FieldLocation: "İstanbul",
	})

	assert.True(t, strings.HasPrefix(preview, "🧾 Taslak Önizleme"))
	assert.Contains(t, preview, "• Başlık: iPhone 13 Pro")
	assert.Contains(t, preview, "• Fiyat: 25000 ₺")
	assert.Contains(t, preview, "• Durum: 2.el")
	assert.Contains(t, preview, "'onaylıyorum'")
}

func TestShouldSupersede(t *testing.T) {
	draft := &domain.Draft{ListingData: domain.JSONMap{domain.FieldTitle: "iPhone 13 Pro"}}

	assert.True(t, drafts.ShouldSupersede(draft, domain.JSONMap{domain.FieldTitle: "Ford Focus"}))
	assert.False(t, drafts.ShouldSupersede(draft, domain.JSONMap{domain.FieldTitle: "İPHONE 13 PRO"}))
	assert.False(t, drafts.ShouldSupersede(draft, domain.JSONMap{}))
}
