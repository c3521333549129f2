package capture

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	t.Run("taxi with numeral word", func(t *testing.T) {
		result := p.Parse("تكسي بخمسة")

		require.True(t, result.HasAmount)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(5_000)))
		assert.Equal(t, "transport", result.Category)
		assert.Equal(t, TypeExpense, result.Type)
		assert.Equal(t, "تكسي", result.Title)
		assert.InDelta(t, 0.8, result.Confidence, 0.001)
	})

	t.Run("salary of a million and a half", func(t *testing.T) {
		result := p.Parse("راتب مليون ونص")

		require.True(t, result.HasAmount)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(1_500_000)))
		assert.Equal(t, "salary", result.Category)
		assert.Equal(t, TypeIncome, result.Type)
		assert.InDelta(t, 0.9, result.Confidence, 0.001)
	})

	t.Run("arabic-indic digits", func(t *testing.T) {
		result := p.Parse("غدا ب٣٥٠")

		require.True(t, result.HasAmount)
		assert.True(t, result.Amount.Equal(decimal.NewFromInt(350_000)))
		assert.Equal(t, "food", result.Category)
	})

	t.Run("expense verb beats income keyword", func(t *testing.T) {
		result := p.Parse("دفعت دين 100")

		assert.Equal(t, TypeExpense, result.Type)
	})

	t.Run("wish not purchase scores low", func(t *testing.T) {
		result := p.Parse("اريد اشتري موبايل")

		assert.False(t, result.HasAmount)
		assert.LessOrEqual(t, result.Confidence, weakSegmentThreshold)
	})

	t.Run("price question scores low", func(t *testing.T) {
		result := p.Parse("شكد سعر تكسي للمطار")

		assert.LessOrEqual(t, result.Confidence, 0.5)
	})

	t.Run("no amount no category", func(t *testing.T) {
		result := p.Parse("شلونكم شباب")

		assert.False(t, result.HasAmount)
		assert.Equal(t, CategoryOther, result.Category)
		assert.Equal(t, TypeExpense, result.Type)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("raw text is preserved trimmed", func(t *testing.T) {
		result := p.Parse("  تكسي 5  ")

		assert.Equal(t, "تكسي 5", result.RawText)
	})
}

// Parsing the same text twice must yield the same result; the pipeline holds
// no state between calls.
func TestParser_Deterministic(t *testing.T) {
	p := NewParser()

	inputs := []string{
		"تكسي بخمسة",
		"قهوة بثلاثة وتكسي بالفين",
		"راتب مليون ونص",
		"اريد اشتري موبايل",
	}
	for _, input := range inputs {
		first := p.Parse(input)
		second := p.Parse(input)
		assert.Equal(t, first, second, "input %q", input)
	}
}

// Confidence must stay in [0,1] and the title non-empty whatever the input,
// including garbage the speech recognizer may produce.
func TestParser_ConfidenceBounds(t *testing.T) {
	p := NewParser()
	faker := gofakeit.New(42)

	inputs := []string{
		"", "   ", "،،،", "٥٥٥٥٥٥٥٥٥٥٥٥", "و", "ونص",
	}
	for i := 0; i < 50; i++ {
		inputs = append(inputs, faker.Sentence(faker.Number(1, 8)))
	}

	for _, input := range inputs {
		result := p.Parse(input)
		assert.GreaterOrEqual(t, result.Confidence, 0.0, "input %q", input)
		assert.LessOrEqual(t, result.Confidence, 1.0, "input %q", input)
		assert.NotEmpty(t, result.Title, "input %q", input)
	}
}

func TestParser_WithDenominations(t *testing.T) {
	p := NewParser(WithDenominations(140_000, 14_000_000))

	note := p.Parse("ورقة")
	require.True(t, note.HasAmount)
	assert.True(t, note.Amount.Equal(decimal.NewFromInt(140_000)))
}

func TestParser_WithLexicon(t *testing.T) {
	lex := DefaultLexicon()
	lex.ExpenseCategories = append([]CategoryKeywords{
		{Key: "pets", Keywords: []string{"قطة"}},
	}, lex.ExpenseCategories...)
	lex.DisplayNames["pets"] = "حيوانات"

	p := NewParser(WithLexicon(lex))
	result := p.Parse("اكل للقطة ب10")

	assert.Equal(t, "pets", result.Category)
}

func TestParseTransactionText(t *testing.T) {
	result := ParseTransactionText("تكسي بخمسة")
	assert.Equal(t, "transport", result.Category)
	assert.True(t, result.HasAmount)
}

func TestParseMultipleTransactions(t *testing.T) {
	results := ParseMultipleTransactions("قهوة بثلاثة وتكسي بالفين")
	require.Len(t, results, 2)
	assert.Equal(t, "food", results[0].Category)
	assert.Equal(t, "transport", results[1].Category)
}

func BenchmarkParser_Parse(b *testing.B) {
	p := NewParser()
	text := "صرفت 25 الف على غدا بالمطعم ويا الشباب"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Parse(text)
	}
}

func BenchmarkParser_ParseAll(b *testing.B) {
	p := NewParser()
	text := strings.Repeat("قهوة بثلاثة وتكسي بالفين، ", 4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.ParseAll(text)
	}
}
