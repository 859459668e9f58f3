package sentiment

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

func TestAnalyze_EmptyText(t *testing.T) {
	result := Analyze("", DefaultContext)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, domain.LabelNeutral, result.Label)
	assert.Equal(t, 0.4, result.Confidence)
	assert.Equal(t, []string{"general"}, result.Themes)
}

func TestAnalyze_WhitespaceOnlyText(t *testing.T) {
	result := Analyze("   \t\n  ", DefaultContext)

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, domain.LabelNeutral, result.Label)
	assert.Equal(t, 0.4, result.Confidence)
}

func TestAnalyze_PositiveBrandMention(t *testing.T) {
	result := Analyze("Apple products are amazing and innovative!", DefaultContext)

	assert.Greater(t, result.Score, 0.2)
	assert.Contains(t, []domain.Label{domain.LabelPositive, domain.LabelVeryPositive}, result.Label)
	assert.NotEmpty(t, result.Positives)
	assert.Empty(t, result.Negatives)
}

func TestAnalyze_NegationFlipsSign(t *testing.T) {
	plain := Analyze("good", DefaultContext)
	negated := Analyze("not good", DefaultContext)

	assert.Greater(t, plain.Score, 0.0)
	assert.Less(t, negated.Score, 0.0)
}

func TestAnalyze_NegationWindowOfTwo(t *testing.T) {
	// The negator is two tokens before the matched word.
	result := Analyze("not that good", DefaultContext)
	assert.Less(t, result.Score, 0.0)
}

func TestAnalyze_IntensifierIncreasesMagnitude(t *testing.T) {
	plain := Analyze("good", DefaultContext)
	intensified := Analyze("very good", DefaultContext)

	assert.GreaterOrEqual(t, math.Abs(intensified.Score), math.Abs(plain.Score))
	assert.InDelta(t, 0.45, intensified.Score, 1e-9)
}

func TestAnalyze_TrailingIntensifier(t *testing.T) {
	// The intensifier immediately after the token also applies.
	result := Analyze("good really", DefaultContext)
	assert.InDelta(t, 0.45, result.Score, 1e-9)
}

func TestAnalyze_NegationAndIntensifierApplyIndependently(t *testing.T) {
	// "not very good": negation flips the sign, the adjacent intensifier
	// amplifies the magnitude. Both apply.
	result := Analyze("not very good", DefaultContext)
	assert.InDelta(t, -0.45, result.Score, 1e-9)
}

func TestAnalyze_ScoreClippedToBounds(t *testing.T) {
	positive := Analyze(strings.Repeat("great ", 10), DefaultContext)
	negative := Analyze(strings.Repeat("awful ", 10), DefaultContext)

	assert.Equal(t, 1.0, positive.Score)
	assert.Equal(t, -1.0, negative.Score)
}

func TestAnalyze_BoundsHoldForArbitraryText(t *testing.T) {
	texts := []string{
		"The service was terrible and the staff were rude, never again",
		"absolutely love this, best purchase ever, highly recommend",
		"meh",
		"Déjà vu — c'était très bien!",
		"1234 5678 !!!",
		strings.Repeat("not very good bad great awful excellent ", 20),
	}
	for _, text := range texts {
		result := Analyze(text, DefaultContext)
		assert.GreaterOrEqual(t, result.Score, -1.0, "text: %q", text)
		assert.LessOrEqual(t, result.Score, 1.0, "text: %q", text)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "text: %q", text)
		assert.LessOrEqual(t, result.Confidence, 1.0, "text: %q", text)
	}
}

func TestAnalyze_ConfidenceCappedAt95(t *testing.T) {
	result := Analyze("great great great", DefaultContext)
	assert.LessOrEqual(t, result.Confidence, 0.95)
}

func TestAnalyze_ConfidenceGrowsWithMatchDensity(t *testing.T) {
	sparse := Analyze("the product we received yesterday was good", DefaultContext)
	dense := Analyze("good great excellent", DefaultContext)

	assert.Greater(t, dense.Confidence, sparse.Confidence)
}

func TestLabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Label
	}{
		{0.61, domain.LabelVeryPositive},
		{1.0, domain.LabelVeryPositive},
		{0.6, domain.LabelPositive},
		{0.21, domain.LabelPositive},
		{0.2, domain.LabelNeutral},
		{0.0, domain.LabelNeutral},
		{-0.2, domain.LabelNeutral},
		{-0.21, domain.LabelNegative},
		{-0.6, domain.LabelNegative},
		{-0.61, domain.LabelVeryNegative},
		{-1.0, domain.LabelVeryNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LabelForScore(tt.score), "score %v", tt.score)
	}
}

func TestLabelForScore_MonotonicOverScoreRange(t *testing.T) {
	order := map[domain.Label]int{
		domain.LabelVeryNegative: 0,
		domain.LabelNegative:     1,
		domain.LabelNeutral:      2,
		domain.LabelPositive:     3,
		domain.LabelVeryPositive: 4,
	}

	prev := domain.LabelVeryNegative
	for score := -1.0; score <= 1.0; score += 0.01 {
		label := LabelForScore(score)
		require.GreaterOrEqual(t, order[label], order[prev], "label ordering inverted at score %v", score)
		prev = label
	}
}

func TestAnalyze_ThemeExtraction(t *testing.T) {
	result := Analyze("The price is great but shipping was slow", DefaultContext)

	assert.Contains(t, result.Themes, "pricing")
	assert.Contains(t, result.Themes, "delivery")
}

func TestAnalyze_ThemeFallback(t *testing.T) {
	result := Analyze("hello world", DefaultContext)
	assert.Equal(t, []string{"general"}, result.Themes)
}

func TestAnalyze_EmotionExtraction(t *testing.T) {
	result := Analyze("I am worried about the risk here", DefaultContext)

	assert.Equal(t, []string{"concern"}, result.Emotions)
}

func TestAnalyze_EntityHeuristics(t *testing.T) {
	result := Analyze("Acme shipped 300 units to Berlin", DefaultContext)

	assert.Contains(t, result.Entities, domain.Entity{Name: "Acme", Type: "organization"})
	assert.Contains(t, result.Entities, domain.Entity{Name: "Berlin", Type: "organization"})
	assert.Contains(t, result.Entities, domain.Entity{Name: "300", Type: "number"})
}

func TestAnalyze_MethodTag(t *testing.T) {
	assert.Equal(t, "lexicon", Analyze("good", DefaultContext).Method)
	assert.Equal(t, "lexicon", Analyze("", DefaultContext).Method)
}
