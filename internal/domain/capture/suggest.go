package capture

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// CategorySuggestion is a fuzzy alternative offered on the confirm screen
// when the substring classifier picked "other" or the user wants to correct
// the guess.
type CategorySuggestion struct {
	Category    string
	DisplayName string
	Keyword     string // the lexicon keyword that scored best
	Score       int    // 0-100, higher is better
}

// suggestionThreshold filters out noise matches; below this the suggestion
// is no better than showing the full category list.
const suggestionThreshold = 40

// SuggestCategories ranks categories of the given direction by fuzzy
// similarity between the input tokens and the lexicon keywords. Results are
// sorted by score, best first, at most limit entries.
func (p *Parser) SuggestCategories(text string, t TransactionType, limit int) []CategorySuggestion {
	tokens := strings.Fields(strings.ToLower(NormalizeDigits(text)))
	if len(tokens) == 0 {
		return nil
	}

	best := make(map[string]CategorySuggestion)
	for _, cat := range p.lex.CategoriesFor(t) {
		for _, kw := range cat.Keywords {
			for _, tok := range tokens {
				score := fuzzyScore(tok, kw)
				if score < suggestionThreshold {
					continue
				}
				if cur, ok := best[cat.Key]; !ok || score > cur.Score {
					best[cat.Key] = CategorySuggestion{
						Category:    cat.Key,
						DisplayName: p.lex.DisplayName(cat.Key),
						Keyword:     kw,
						Score:       score,
					}
				}
			}
		}
	}

	results := make([]CategorySuggestion, 0, len(best))
	for _, s := range best {
		results = append(results, s)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Category < results[j].Category
	})
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// fuzzyScore rates the similarity of a token and a keyword on a 0-100 scale
// using containment, Levenshtein distance and subsequence rank.
func fuzzyScore(tok, kw string) int {
	if tok == kw {
		return 100
	}
	if strings.Contains(tok, kw) {
		return 75 + 25*len(kw)/len(tok)
	}
	if strings.Contains(kw, tok) {
		return 75 + 25*len(tok)/len(kw)
	}

	maxLen := len([]rune(tok))
	if l := len([]rune(kw)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(tok, kw)
	levScore := 100 * (maxLen - distance) / maxLen

	rankScore := 0
	if rank := fuzzy.RankMatch(tok, kw); rank >= 0 && rank < maxLen {
		rankScore = 60 - 40*rank/maxLen
	}

	if levScore > rankScore {
		return levScore
	}
	return rankScore
}
