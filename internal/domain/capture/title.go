package capture

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var numberTokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Unit and filler tokens stripped from titles: currency words, the scale
// words, fraction connectors and stranded prepositions.
var fillerTokens = []string{
	"دينار", "دنانير", "الف", "ألف", "الاف", "آلاف", "مليون", "ملايين",
	"ورقة", "ورقه", "دفتر", "نص", "نصف", "ربع", "ونص", "ونصف", "وربع",
	"و", "ب", "بال",
}

// titleRefiner strips the recognized numeric, intent and unit tokens from the
// digit-normalized original text to leave a short human-readable label.
type titleRefiner struct {
	lex      *Lexicon
	intentRe *regexp.Regexp
	fillers  map[string]struct{}
}

func newTitleRefiner(lex *Lexicon) *titleRefiner {
	words := make([]string, 0, len(lex.ExpenseIntents)+len(lex.IncomeIntents))
	for _, w := range append(append([]string(nil), lex.ExpenseIntents...), lex.IncomeIntents...) {
		words = append(words, regexp.QuoteMeta(w))
	}
	fillers := make(map[string]struct{}, len(fillerTokens))
	for _, t := range fillerTokens {
		fillers[t] = struct{}{}
	}
	return &titleRefiner{
		lex:      lex,
		intentRe: regexp.MustCompile(strings.Join(words, "|")),
		fillers:  fillers,
	}
}

// Refine produces the title for a parse. The input is the trimmed,
// digit-normalized text with original casing; category is the already
// resolved category key for the fallback label.
func (t *titleRefiner) Refine(normalized, category string) string {
	s := numberTokenRe.ReplaceAllString(normalized, " ")
	s = t.intentRe.ReplaceAllString(s, " ")

	kept := make([]string, 0, 4)
	for _, tok := range strings.Fields(s) {
		if _, ok := t.fillers[tok]; ok {
			continue
		}
		if _, ok := t.lex.lookupNumeral(tok); ok {
			continue
		}
		kept = append(kept, tok)
	}

	title := strings.TrimSpace(strings.Join(kept, " "))
	if utf8.RuneCountInString(title) < 2 {
		return t.lex.DisplayName(category)
	}
	return title
}
