package sentiment

import (
	"errors"
	"testing"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

func TestClassifyRatingDominates(t *testing.T) {
	// High and low ratings decide regardless of wording.
	for _, rating := range []int{4, 5} {
		got, err := Classify(rating, "absolutely terrible, the worst")
		if err != nil {
			t.Fatalf("Classify(%d) unexpected error: %v", rating, err)
		}
		if got != domain.SentimentPositive {
			t.Fatalf("Classify(%d) = %s, want positive", rating, got)
		}
	}
	for _, rating := range []int{1, 2} {
		got, err := Classify(rating, "excellent, amazing, perfect")
		if err != nil {
			t.Fatalf("Classify(%d) unexpected error: %v", rating, err)
		}
		if got != domain.SentimentNegative {
			t.Fatalf("Classify(%d) = %s, want negative", rating, got)
		}
	}
}

func TestClassifyMiddlingRating(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Sentiment
	}{
		{"positive keywords win", "excellent service", domain.SentimentPositive},
		{"negative keywords win", "terrible food", domain.SentimentNegative},
		{"no keywords", "it was fine", domain.SentimentNeutral},
		{"tie", "good food but poor service", domain.SentimentNeutral},
		{"case insensitive", "GREAT atmosphere", domain.SentimentPositive},
		{"repeated keyword counts once", "bad bad bad but great and wonderful", domain.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(3, tt.text)
			if err != nil {
				t.Fatalf("Classify(3, %q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Fatalf("Classify(3, %q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyInvalidInput(t *testing.T) {
	if _, err := Classify(0, "fine"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("rating 0: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Classify(6, "fine"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("rating 6: error = %v, want ErrInvalidInput", err)
	}
	if _, err := Classify(3, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank text: error = %v, want ErrInvalidInput", err)
	}
}
