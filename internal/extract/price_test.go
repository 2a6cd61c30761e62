package extract_test

import (
	"testing"

	"github.com/pazarglobal/agent/internal/extract"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantOK  bool
	}{
		{"plain amount", "iPhone 13 25000 TL", 25000, true},
		{"bare amount", "25000", 25000, true},
		{"two digit minimum", "fiyat 99 tl", 99, true},
		{"single digit skipped", "3 adet var", 0, false},
		{"eight digits skipped", "12345678", 0, false},
		{"first eligible run wins", "2 oda 15000 TL", 15000, true},
		{"no digits", "merhaba", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extract.Price(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Price(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHasCurrencyMarker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"25000 TL", true},
		{"25000₺", true},
		{"25000", true},
		{"  31000  ", true},
		{"iPhone 13 Pro 25000", false},
		{"tlf numaram", false},
	}
	for _, tt := range tests {
		if got := extract.HasCurrencyMarker(tt.in); got != tt.want {
			t.Errorf("HasCurrencyMarker(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPriceRange(t *testing.T) {
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name    string
		in      string
		wantMin *float64
		wantMax *float64
	}{
		{"explicit range", "telefon 10000-20000", ptr(10000), ptr(20000)},
		{"k shorthand under", "araba 50k altı", nil, ptr(50000)},
		{"bin shorthand over", "daire 100bin üstü", ptr(100000), nil},
		{"altında variant", "15000 altında laptop", nil, ptr(15000)},
		{"no range", "istanbul araba", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := extract.PriceRange(tt.in)
			if !eq(gotMin, tt.wantMin) || !eq(gotMax, tt.wantMax) {
				t.Errorf("PriceRange(%q) = (%v, %v), want (%v, %v)",
					tt.in, deref(gotMin), deref(gotMax), deref(tt.wantMin), deref(tt.wantMax))
			}
		})
	}
}

func eq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
