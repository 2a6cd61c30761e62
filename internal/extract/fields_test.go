package extract_test

import (
	"testing"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/extract"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"trailing city", "iPhone 13 satılık İstanbul", "İstanbul", true},
		{"city after currency word", "iPhone 13 Pro 256GB 25000 TL İstanbul", "İstanbul", true},
		{"city after category word", "Elektronik İstanbul", "İstanbul", true},
		{"konum marker", "konum: Kadıköy", "Kadıköy", true},
		{"currency tail rejected", "macbook 30000 lira", "", false},
		{"search marker rejected", "araba arıyorum", "", false},
		{"too many words", "bir iki üç dört beş", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.Location(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Location(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLocationHint(t *testing.T) {
	city, ok := extract.LocationHint("Ankara'da ucuz laptop var mı")
	if !ok || city != "ankara" {
		t.Errorf("LocationHint = (%q, %v), want (ankara, true)", city, ok)
	}
	if _, ok := extract.LocationHint("ucuz laptop"); ok {
		t.Error("expected no city hint")
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		hasPrice bool
		location string
		want     string
		wantOK   bool
	}{
		{"strips price and location", "iPhone 13 Pro 256GB 25000 TL İstanbul", true, "İstanbul", "iPhone 13 Pro 256GB", true},
		{"command rejected", "iphone ara", false, "", "", false},
		{"commit rejected", "onaylıyorum", false, "", "", false},
		{"pure number rejected", "25000", true, "", "", false},
		{"plain product kept", "Beko buzdolabı", false, "", "Beko buzdolabı", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.Title(tt.in, tt.hasPrice, tt.location)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Title(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	attrs := extract.Attributes("2018 model Dizel otomatik 85.000 km tramer yok")
	if attrs[domain.AttrYear] != "2018" {
		t.Errorf("year = %v", attrs[domain.AttrYear])
	}
	if attrs[domain.AttrFuel] != "Dizel" {
		t.Errorf("fuel = %v", attrs[domain.AttrFuel])
	}
	if attrs[domain.AttrTransmission] != "Otomatik" {
		t.Errorf("transmission = %v", attrs[domain.AttrTransmission])
	}
	if attrs[domain.AttrKM] != "85000" {
		t.Errorf("km = %v", attrs[domain.AttrKM])
	}
	if attrs[domain.AttrTramer] != "Yok" {
		t.Errorf("tramer = %v", attrs[domain.AttrTramer])
	}
}

func TestAttributes_Electronics(t *testing.T) {
	attrs := extract.Attributes("256 GB depolama 8 GB RAM garantili")
	if attrs[domain.AttrStorage] != "256GB" {
		t.Errorf("storage = %v", attrs[domain.AttrStorage])
	}
	if attrs[domain.AttrRAM] != "8GB" {
		t.Errorf("ram = %v", attrs[domain.AttrRAM])
	}
	if attrs[domain.AttrWarranty] != "Var" {
		t.Errorf("warranty = %v", attrs[domain.AttrWarranty])
	}
}

func TestAttributes_NoMatchReturnsNil(t *testing.T) {
	if attrs := extract.Attributes("merhaba"); attrs != nil {
		t.Errorf("expected nil, got %v", attrs)
	}
}

func TestFields_ListingPacket(t *testing.T) {
	patch := extract.Fields("iPhone 13 Pro 256GB 25000 TL İstanbul")

	if got := patch[domain.FieldPrice]; got != 25000.0 {
		t.Errorf("price = %v, want 25000", got)
	}
	if got := patch.String(domain.FieldLocation); got != "İstanbul" {
		t.Errorf("location = %q", got)
	}
	if got := patch.String(domain.FieldTitle); got != "iPhone 13 Pro 256GB" {
		t.Errorf("title = %q", got)
	}
	if got := patch.String(domain.FieldCategory); got != "Elektronik" {
		t.Errorf("category = %q", got)
	}
}

func TestFields_PriceNeedsCurrencyMarker(t *testing.T) {
	patch := extract.Fields("iPhone 13 Pro 256GB")
	if _, ok := patch[domain.FieldPrice]; ok {
		t.Error("price must not be extracted without a currency marker")
	}
}

func TestFields_EmptyMessage(t *testing.T) {
	if patch := extract.Fields("ok"); patch != nil {
		t.Errorf("expected nil patch, got %v", patch)
	}
}
