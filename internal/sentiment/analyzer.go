package sentiment

import (
	"log/slog"
	"math"
	"strings"
	"unicode"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/metrics"
)

const (
	// tokenWeight is the absolute contribution of one matched token.
	tokenWeight = 0.3
	// intensifierBoost multiplies a contribution when the token is adjacent
	// to an intensifier.
	intensifierBoost = 1.5
	// methodLexicon tags results produced by the local lexicon scorer.
	methodLexicon = "lexicon"

	baseConfidence = 0.4
	maxConfidence  = 0.95
)

// DefaultContext is used when the caller does not specify an analysis context.
const DefaultContext = "general"

// Analyze scores a single text against the static lexicon. It never fails:
// empty or unparseable input yields a neutral result, and an unexpected panic
// inside the scorer is recovered into the same neutral fallback.
func Analyze(text, context string) (result domain.SentimentResult) {
	if context == "" {
		context = DefaultContext
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Sentiment analysis panicked, substituting neutral result", "panic", r)
			metrics.AnalysisPanicsTotal.Inc()
			result = NeutralResult()
		}
	}()

	rawTokens := strings.Fields(text)
	if len(rawTokens) == 0 {
		return NeutralResult()
	}

	tokens := make([]string, len(rawTokens))
	for i, tok := range rawTokens {
		tokens[i] = normalizeToken(tok)
	}

	var (
		sum       float64
		matched   int
		positives []string
		negatives []string
	)

	for i, tok := range tokens {
		polarity := tokenPolarity(tok)
		if polarity == 0 {
			continue
		}
		matched++

		contribution := polarity * tokenWeight
		if isNegated(tokens, i) {
			contribution = -contribution
		}
		if isIntensified(tokens, i) {
			contribution *= intensifierBoost
		}
		sum += contribution

		if polarity > 0 {
			positives = append(positives, tok)
		} else {
			negatives = append(negatives, tok)
		}
	}

	score := clamp(sum, -1, 1)
	confidence := math.Min(maxConfidence, baseConfidence+float64(matched)/float64(len(tokens))*0.5)

	metrics.AnalysesTotal.WithLabelValues(string(LabelForScore(score))).Inc()

	return domain.SentimentResult{
		Score:      score,
		Label:      LabelForScore(score),
		Confidence: confidence,
		Themes:     extractThemes(tokens, context),
		Positives:  positives,
		Negatives:  negatives,
		Entities:   extractEntities(rawTokens),
		Emotions:   extractEmotions(tokens),
		Method:     methodLexicon,
	}
}

// NeutralResult is the fallback for empty input and internal scoring errors.
func NeutralResult() domain.SentimentResult {
	return domain.SentimentResult{
		Score:      0,
		Label:      domain.LabelNeutral,
		Confidence: baseConfidence,
		Themes:     []string{DefaultContext},
		Method:     methodLexicon,
	}
}

// LabelForScore derives the discrete bucket for a score. The thresholds are
// the single source of truth for labels everywhere: scorer, aggregator and
// breakdown buckets all go through this function.
func LabelForScore(score float64) domain.Label {
	switch {
	case score > 0.6:
		return domain.LabelVeryPositive
	case score > 0.2:
		return domain.LabelPositive
	case score >= -0.2:
		return domain.LabelNeutral
	case score >= -0.6:
		return domain.LabelNegative
	default:
		return domain.LabelVeryNegative
	}
}

// tokenPolarity returns +1 for a positive match, -1 for a negative match and
// 0 otherwise. Matching is substring-based; negative words win ties so that
// e.g. "dislike" does not count as "like".
func tokenPolarity(token string) float64 {
	if token == "" {
		return 0
	}
	for _, w := range negativeWords {
		if strings.Contains(token, w) {
			return -1
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(token, w) {
			return 1
		}
	}
	return 0
}

// isNegated reports whether either of the two preceding tokens is a negator.
func isNegated(tokens []string, i int) bool {
	if i >= 1 {
		if _, ok := negatorWords[tokens[i-1]]; ok {
			return true
		}
	}
	if i >= 2 {
		if _, ok := negatorWords[tokens[i-2]]; ok {
			return true
		}
	}
	return false
}

// isIntensified reports whether the token immediately before or after is an
// intensifier. Negation and intensification are applied independently, so
// "not very good" is both flipped and amplified.
func isIntensified(tokens []string, i int) bool {
	if i >= 1 {
		if _, ok := intensifierWords[tokens[i-1]]; ok {
			return true
		}
	}
	if i+1 < len(tokens) {
		if _, ok := intensifierWords[tokens[i+1]]; ok {
			return true
		}
	}
	return false
}

// normalizeToken lowercases a token and strips surrounding punctuation,
// keeping inner apostrophes so contractions like "don't" survive.
func normalizeToken(token string) string {
	return strings.TrimFunc(strings.ToLower(token), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
