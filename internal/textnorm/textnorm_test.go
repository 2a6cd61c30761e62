package textnorm_test

import (
	"testing"

	"github.com/pazarglobal/agent/internal/textnorm"
)

func TestLower_TurkishCasing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"İstanbul", "istanbul"},
		{"ISPARTA", "ısparta"},
		{"DİZEL", "dizel"},
		{"iPhone", "iphone"},
	}
	for _, tt := range tests {
		if got := textnorm.Lower(tt.in); got != tt.want {
			t.Errorf("Lower(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFold_StripsDiacritics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Şarj Âleti", "sarj aleti"},
		{"Çamaşır", "camasir"},
		{"Eğitim & Kurs", "egitim & kurs"},
		{"ISPARTA", "isparta"},
		{"ömer", "omer"},
	}
	for _, tt := range tests {
		if got := textnorm.Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps room format", "3+1 Daire, Kadıköy!", "3+1 daire kadikoy"},
		{"keeps ampersand", "Ev & Yaşam", "ev & yasam"},
		{"collapses spaces", "  iPhone   13  ", "iphone 13"},
		{"empty", "·—!?", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textnorm.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsPhrase(t *testing.T) {
	haystack := textnorm.Normalize("Sahibinden stüdyo daire kiralık")
	if !textnorm.ContainsPhrase(haystack, "studyo daire") {
		t.Error("expected phrase match on word boundaries")
	}
	if textnorm.ContainsPhrase(textnorm.Normalize("dairem var"), "daire") {
		t.Error("partial word must not match as phrase")
	}
}

func TestTokenSet(t *testing.T) {
	set := textnorm.TokenSet("BMW 320i 2015 model")
	for _, want := range []string{"bmw", "320i", "2015", "model"} {
		if _, ok := set[want]; !ok {
			t.Errorf("missing token %q", want)
		}
	}
}
