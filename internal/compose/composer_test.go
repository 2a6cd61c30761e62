package compose_test

import (
	"strings"
	"testing"

	"github.com/pazarglobal/agent/internal/compose"
	"github.com/pazarglobal/agent/internal/domain"
)

func TestEnrichTitle_AppendsDistinguishingTerms(t *testing.T) {
	data := domain.JSONMap{
		domain.FieldTitle: "iPhone 13 Pro",
		domain.FieldAttributes: map[string]any{
			domain.AttrStorage: "256GB",
		},
	}
	got := compose.EnrichTitle("iPhone 13 Pro", data, nil)
	if !strings.Contains(got, "256GB") {
		t.Errorf("EnrichTitle = %q, want 256GB appended", got)
	}
	if !strings.HasPrefix(got, "iPhone 13 Pro") {
		t.Errorf("EnrichTitle = %q, base title must stay a prefix", got)
	}
}

func TestEnrichTitle_SkipsTermsAlreadyPresent(t *testing.T) {
	data := domain.JSONMap{
		domain.FieldAttributes: map[string]any{
			domain.AttrStorage: "256GB",
		},
	}
	got := compose.EnrichTitle("iPhone 13 Pro 256gb", data, nil)
	if got != "iPhone 13 Pro 256gb" {
		t.Errorf("EnrichTitle = %q, want unchanged (term already present)", got)
	}
}

func TestEnrichTitle_EmptyBase(t *testing.T) {
	if got := compose.EnrichTitle("  ", nil, nil); got != "" {
		t.Errorf("EnrichTitle on empty base = %q, want empty", got)
	}
}

func TestEnrichTitle_VisionFillsGaps(t *testing.T) {
	vision := domain.JSONMap{domain.AttrBrand: "Apple"}
	got := compose.EnrichTitle("Telefon satılık", nil, vision)
	if !strings.Contains(got, "Apple") {
		t.Errorf("EnrichTitle = %q, want vision brand appended", got)
	}
}

func TestDescription_VehicleLayout(t *testing.T) {
	data := domain.JSONMap{
		domain.FieldTitle:    "Ford Focus",
		domain.FieldCategory: "Otomotiv",
		domain.FieldAttributes: map[string]any{
			domain.AttrYear: "2018",
			domain.AttrKM:   "85000",
			domain.AttrFuel: "Dizel",
		},
	}

	got := compose.Description(data, nil)

	if !strings.HasPrefix(got, "Ford Focus ilanıdır.") {
		t.Errorf("description must open with the title line, got %q", got)
	}
	if !strings.Contains(got, "Durum: 2.el.") {
		t.Errorf("missing default condition line: %q", got)
	}
	if !strings.Contains(got, "Öne çıkanlar: Yıl: 2018, KM: 85000, Yakıt: Dizel.") {
		t.Errorf("missing vehicle highlights: %q", got)
	}
	if !strings.Contains(got, "Bilgiler kullanıcı beyanına ve görsellere dayanır.") {
		t.Errorf("missing closing line: %q", got)
	}
}

func TestDescription_RedactsNotes(t *testing.T) {
	data := domain.JSONMap{
		domain.FieldTitle:            "Koltuk takımı",
		domain.FieldLocation:         "Ankara",
		domain.FieldDescriptionNotes: "Tertemiz, 05551234567 arayın, 3000 TL, Ankara içi teslim",
	}

	got := compose.Description(data, nil)

	if strings.Contains(got, "05551234567") {
		t.Errorf("phone number leaked: %q", got)
	}
	if strings.Contains(got, "3000 TL") {
		t.Errorf("price leaked into notes: %q", got)
	}
	if strings.Contains(got, "Ankara içi") {
		t.Errorf("location leaked into notes: %q", got)
	}
	if !strings.Contains(got, "Tertemiz") {
		t.Errorf("legitimate note text dropped: %q", got)
	}
}

func TestDescription_EmptyTitle(t *testing.T) {
	if got := compose.Description(domain.JSONMap{}, nil); got != "" {
		t.Errorf("Description without title = %q, want empty", got)
	}
}

func TestDescriptionQuestion(t *testing.T) {
	tests := []struct {
		name     string
		category string
		data     domain.JSONMap
		wantAsk  bool
	}{
		{
			name:     "vehicle missing everything",
			category: "Otomotiv",
			data:     domain.JSONMap{},
			wantAsk:  true,
		},
		{
			name:     "vehicle complete",
			category: "Otomotiv",
			data: domain.JSONMap{
				domain.FieldAttributes: map[string]any{
					domain.AttrYear: "2018", domain.AttrKM: "85000",
					domain.AttrFuel: "Dizel", domain.AttrTransmission: "Otomatik",
					domain.AttrTramer: "Yok",
				},
			},
			wantAsk: false,
		},
		{
			name:     "electronics missing storage",
			category: "Elektronik",
			data:     domain.JSONMap{},
			wantAsk:  true,
		},
		{
			name:     "apparel missing size",
			category: "Moda & Aksesuar",
			data:     domain.JSONMap{},
			wantAsk:  true,
		},
		{
			name:     "unmatched category",
			category: "Hizmetler",
			data:     domain.JSONMap{},
			wantAsk:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compose.DescriptionQuestion(tt.category, tt.data)
			if (got != "") != tt.wantAsk {
				t.Errorf("DescriptionQuestion(%q) = %q, wantAsk=%v", tt.category, got, tt.wantAsk)
			}
		})
	}
}
