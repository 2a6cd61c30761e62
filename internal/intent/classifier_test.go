package intent_test

import (
	"testing"

	"github.com/pazarglobal/agent/internal/domain"
	"github.com/pazarglobal/agent/internal/intent"
)

// One pinned case per cascade rule; reordering the rules breaks these.
func TestClassify_RuleOrder(t *testing.T) {
	tests := []struct {
		name           string
		in             string
		wantIntent     domain.Intent
		wantConfidence float64
	}{
		{"greeting", "merhaba", domain.IntentSmallTalk, 0.9},
		{"greeting two words", "selam abi", domain.IntentSmallTalk, 0.9},
		{"small talk", "naber, ne var ne yok", domain.IntentSmallTalk, 0.85},
		{"cancel", "iptal et", domain.IntentCancel, 0.95},
		{"commit", "onaylıyorum", domain.IntentCommitRequest, 0.9},
		{"commit shadows create on paylaş", "paylaş artık", domain.IntentCommitRequest, 0.9},
		{"create", "ilan vermek istiyorum", domain.IntentCreateListing, 0.85},
		{"create via satılık", "satılık bisiklet", domain.IntentCreateListing, 0.85},
		{"search verb", "telefon bul", domain.IntentSearchListing, 0.75},
		{"verb inside a word ignored", "istanbul", domain.IntentUnknown, 0.4},
		{"search istiyorum alone", "ucuz telefon istiyorum", domain.IntentSearchListing, 0.75},
		{"search marker", "araba ilanları", domain.IntentSearchListing, 0.8},
		{"price inquiry", "iphone ne kadar", domain.IntentSearchListing, 0.85},
		{"listing packet", "iPhone 13 Pro 25000 TL İstanbul", domain.IntentAmbiguous, 0.55},
		{"bare price", "25000", domain.IntentAmbiguous, 0.5},
		{"unknown", "yarın hava nasıl olur", domain.IntentUnknown, 0.4},
		{"blank", "   ", domain.IntentUnknown, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intent.Classify(tt.in)
			if got.Intent != tt.wantIntent {
				t.Errorf("Classify(%q).Intent = %v, want %v", tt.in, got.Intent, tt.wantIntent)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Classify(%q).Confidence = %v, want %v", tt.in, got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassify_GreetingWithPriceIsNotSmallTalk(t *testing.T) {
	got := intent.Classify("selam 25000")
	if got.Intent == domain.IntentSmallTalk {
		t.Errorf("greeting with a price must not be small talk, got %v", got.Intent)
	}
}

func TestClassify_SearchScenario(t *testing.T) {
	got := intent.Classify("araba arıyorum istanbul")
	if got.Intent != domain.IntentSearchListing {
		t.Fatalf("intent = %v, want SEARCH_LISTING", got.Intent)
	}
	if got.Confidence < 0.75 {
		t.Errorf("confidence = %v, want >= 0.75", got.Confidence)
	}
}
