package capture

import (
	"regexp"

	"github.com/cloudflare/ahocorasick"
)

// Verb-stem patterns catch conjugations the intent word lists miss
// ("يصرف", "اشترينا", "دفعنا").
var (
	spendStemRe   = regexp.MustCompile(`صرف|اشتر|شري|دفع|انط|كلف`)
	receiveStemRe = regexp.MustCompile(`استلم|حصل|اجان|وصل|ربح|قبض|بعت`)
)

// classifier resolves transaction direction and category. All keyword
// membership tests run through Aho-Corasick matchers so a single pass over
// the text checks the whole lexicon.
type classifier struct {
	lex *Lexicon

	expenseIntents *ahocorasick.Matcher
	incomeIntents  *ahocorasick.Matcher
	negative       *ahocorasick.Matcher

	expenseKeywords *categoryMatcher
	incomeKeywords  *categoryMatcher
}

func newClassifier(lex *Lexicon) *classifier {
	return &classifier{
		lex:             lex,
		expenseIntents:  newSubstringMatcher(lex.ExpenseIntents),
		incomeIntents:   newSubstringMatcher(lex.IncomeIntents),
		negative:        newSubstringMatcher(lex.NegativeMarkers),
		expenseKeywords: newCategoryMatcher(lex.ExpenseCategories),
		incomeKeywords:  newCategoryMatcher(lex.IncomeCategories),
	}
}

func newSubstringMatcher(words []string) *ahocorasick.Matcher {
	if len(words) == 0 {
		return nil
	}
	patterns := make([][]byte, len(words))
	for i, w := range words {
		patterns[i] = []byte(w)
	}
	return ahocorasick.NewMatcher(patterns)
}

func anyMatch(m *ahocorasick.Matcher, text string) bool {
	return m != nil && len(m.Match([]byte(text))) > 0
}

// Intents reports whether expense and income intent signals fired.
func (c *classifier) Intents(text string) (hasExpense, hasIncome bool) {
	hasExpense = anyMatch(c.expenseIntents, text) || spendStemRe.MatchString(text)
	hasIncome = anyMatch(c.incomeIntents, text) || receiveStemRe.MatchString(text)
	return hasExpense, hasIncome
}

// ResolveType applies the direction rule: income only wins when expense
// intent is absent; expense is the default for "both" and "neither".
func ResolveType(hasExpense, hasIncome bool) TransactionType {
	if hasIncome && !hasExpense {
		return TypeIncome
	}
	return TypeExpense
}

// Category picks the first category (in declaration order) whose keyword
// list has a substring hit, for the already-resolved direction. Direction is
// never reconsidered here.
func (c *classifier) Category(text string, t TransactionType) string {
	km := c.expenseKeywords
	if t == TypeIncome {
		km = c.incomeKeywords
	}
	return km.bestCategory(text)
}

// HasNegativeMarker reports whether any negative-intent word is present.
func (c *classifier) HasNegativeMarker(text string) bool {
	return anyMatch(c.negative, text)
}

// categoryMatcher flattens the ordered category tables into one Aho-Corasick
// dictionary and keeps, per pattern, the category it belongs to and that
// category's declaration rank so first-declared-category-wins survives the
// single-pass match.
type categoryMatcher struct {
	matcher    *ahocorasick.Matcher
	categories []string
	rank       []int
}

func newCategoryMatcher(cats []CategoryKeywords) *categoryMatcher {
	cm := &categoryMatcher{}
	var patterns [][]byte
	for order, cat := range cats {
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			patterns = append(patterns, []byte(kw))
			cm.categories = append(cm.categories, cat.Key)
			cm.rank = append(cm.rank, order)
		}
	}
	if len(patterns) > 0 {
		cm.matcher = ahocorasick.NewMatcher(patterns)
	}
	return cm
}

func (cm *categoryMatcher) bestCategory(text string) string {
	if cm.matcher == nil {
		return CategoryOther
	}
	hits := cm.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return CategoryOther
	}
	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(cm.rank) {
			continue
		}
		if best == -1 || cm.rank[idx] < cm.rank[best] {
			best = idx
		}
	}
	if best == -1 {
		return CategoryOther
	}
	return cm.categories[best]
}
