package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_SuggestCategories(t *testing.T) {
	p := NewParser()

	t.Run("exact keyword tops the list", func(t *testing.T) {
		suggestions := p.SuggestCategories("تكسي", TypeExpense, 3)

		require.NotEmpty(t, suggestions)
		assert.Equal(t, "transport", suggestions[0].Category)
		assert.Equal(t, 100, suggestions[0].Score)
		assert.Equal(t, "مواصلات", suggestions[0].DisplayName)
	})

	t.Run("misspelled keyword still matches", func(t *testing.T) {
		// تاكسي with a dropped ا
		suggestions := p.SuggestCategories("تكس", TypeExpense, 3)

		require.NotEmpty(t, suggestions)
		assert.Equal(t, "transport", suggestions[0].Category)
	})

	t.Run("direction filters the tables", func(t *testing.T) {
		suggestions := p.SuggestCategories("راتب", TypeIncome, 3)

		require.NotEmpty(t, suggestions)
		assert.Equal(t, "salary", suggestions[0].Category)

		for _, s := range p.SuggestCategories("راتب", TypeExpense, 5) {
			assert.NotEqual(t, "salary", s.Category)
		}
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		suggestions := p.SuggestCategories("قهوة مطعم تكسي ايجار", TypeExpense, 2)
		assert.LessOrEqual(t, len(suggestions), 2)
	})

	t.Run("at most one suggestion per category", func(t *testing.T) {
		suggestions := p.SuggestCategories("قهوة مطعم شاي", TypeExpense, 10)

		seen := make(map[string]bool)
		for _, s := range suggestions {
			assert.False(t, seen[s.Category], "duplicate category %s", s.Category)
			seen[s.Category] = true
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, p.SuggestCategories("", TypeExpense, 3))
		assert.Nil(t, p.SuggestCategories("   ", TypeExpense, 3))
	})
}

func TestFuzzyScore(t *testing.T) {
	t.Run("identical", func(t *testing.T) {
		assert.Equal(t, 100, fuzzyScore("تكسي", "تكسي"))
	})

	t.Run("containment beats distance", func(t *testing.T) {
		contained := fuzzyScore("بالتكسي", "تكسي")
		assert.GreaterOrEqual(t, contained, 75)
	})

	t.Run("unrelated scores low", func(t *testing.T) {
		assert.Less(t, fuzzyScore("قهوة", "ايجار"), suggestionThreshold)
	})

	t.Run("scores are ordered by closeness", func(t *testing.T) {
		near := fuzzyScore("تكس", "تكسي")
		far := fuzzyScore("كتب", "تكسي")
		assert.Greater(t, near, far)
	})
}
