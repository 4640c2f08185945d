// Package sentiment derives a review's tone from its rating and text with a
// fixed, deterministic keyword rule.
package sentiment

import (
	"fmt"
	"strings"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

var positiveKeywords = []string{
	"excellent", "great", "good", "amazing", "wonderful", "fantastic", "love", "perfect",
}

var negativeKeywords = []string{
	"bad", "poor", "terrible", "awful", "hate", "worst", "horrible", "disgusting",
}

// Classify maps a rating and free text to a sentiment category. The rating
// decides outright at the extremes; a middling rating falls back to counting
// keyword hits in the text. Ratings outside 1..5 and blank text are rejected.
func Classify(rating int, text string) (domain.Sentiment, error) {
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: review text must not be empty", domain.ErrInvalidInput)
	}

	if rating >= 4 {
		return domain.SentimentPositive, nil
	}
	if rating <= 2 {
		return domain.SentimentNegative, nil
	}

	lower := strings.ToLower(text)
	positive := countHits(lower, positiveKeywords)
	negative := countHits(lower, negativeKeywords)

	switch {
	case positive > negative:
		return domain.SentimentPositive, nil
	case negative > positive:
		return domain.SentimentNegative, nil
	default:
		return domain.SentimentNeutral, nil
	}
}

// countHits counts how many keywords occur in text; each keyword counts once
// however often it repeats.
func countHits(text string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			hits++
		}
	}
	return hits
}
