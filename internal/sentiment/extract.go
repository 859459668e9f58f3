package sentiment

import (
	"strings"
	"unicode"

	"github.com/AsukaFurukawa/OmniOrchestrator-sub000/internal/domain"
)

// extractThemes maps normalized tokens to themes through the keyword
// dictionary. At least one theme is always returned; fallback is the
// analysis context ("general" by default).
func extractThemes(tokens []string, fallback string) []string {
	seen := make(map[string]struct{})
	var themes []string
	for _, tok := range tokens {
		for keyword, theme := range themeKeywords {
			if !strings.Contains(tok, keyword) {
				continue
			}
			if _, dup := seen[theme]; dup {
				continue
			}
			seen[theme] = struct{}{}
			themes = append(themes, theme)
		}
	}
	if len(themes) == 0 {
		themes = []string{fallback}
	}
	return themes
}

// extractEntities applies two heuristics over the original-case tokens:
// capitalized words become organization candidates and numeric tokens become
// number candidates. This is deliberately not NER-grade.
func extractEntities(rawTokens []string) []domain.Entity {
	seen := make(map[string]struct{})
	var entities []domain.Entity
	for _, raw := range rawTokens {
		tok := strings.TrimFunc(raw, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if tok == "" {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}

		runes := []rune(tok)
		switch {
		case isNumeric(tok):
			seen[tok] = struct{}{}
			entities = append(entities, domain.Entity{Name: tok, Type: "number"})
		case unicode.IsUpper(runes[0]) && len(runes) > 1:
			seen[tok] = struct{}{}
			entities = append(entities, domain.Entity{Name: tok, Type: "organization"})
		}
	}
	return entities
}

// extractEmotions maps normalized tokens to coarse emotional tones.
func extractEmotions(tokens []string) []string {
	seen := make(map[string]struct{})
	var emotions []string
	for _, tok := range tokens {
		for keyword, emotion := range emotionKeywords {
			if !strings.Contains(tok, keyword) {
				continue
			}
			if _, dup := seen[emotion]; dup {
				continue
			}
			seen[emotion] = struct{}{}
			emotions = append(emotions, emotion)
		}
	}
	return emotions
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsNumber(r) && r != '.' && r != ',' {
			return false
		}
	}
	return s != ""
}
