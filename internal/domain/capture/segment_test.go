package capture

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmenter_Split(t *testing.T) {
	s := newSegmenter(DefaultLexicon())

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single segment", "تكسي 5", []string{"تكسي 5"}},
		{"waw prefix", "قهوة 3 وتكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"standalone waw", "قهوة 3 و تكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"comma", "قهوة 3، تكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"then word", "قهوة 3 ثم تكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"badeen", "قهوة 3 بعدين تكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"waw badeen", "قهوة 3 وبعدين تكسي 2000", []string{"قهوة 3", "تكسي 2000"}},
		{"protected fraction connector", "راتب مليون ونص", []string{"راتب مليون ونص"}},
		{"protected note word", "موبايل ورقة", []string{"موبايل ورقة"}},
		{"protected lexicon word وقود", "بنزين وقود 20", []string{"بنزين وقود 20"}},
		{"protected lexicon word واحد", "واحد شاي", []string{"واحد شاي"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.split(tt.input))
		})
	}
}

func TestParser_ParseAll(t *testing.T) {
	p := NewParser()

	t.Run("two transactions in input order", func(t *testing.T) {
		results := p.ParseAll("قهوة بثلاثة وتكسي بالفين")

		require.Len(t, results, 2)
		assert.Equal(t, "food", results[0].Category)
		assert.True(t, results[0].Amount.Equal(decimal.NewFromInt(3_000)))
		assert.Equal(t, "transport", results[1].Category)
		assert.True(t, results[1].Amount.Equal(decimal.NewFromInt(2_000)))
	})

	t.Run("category carries over to amount-only segment", func(t *testing.T) {
		results := p.ParseAll("غدا 10 وبعدين 5")

		require.Len(t, results, 2)
		assert.Equal(t, "food", results[0].Category)
		assert.Equal(t, "food", results[1].Category)
		assert.Equal(t, TypeExpense, results[1].Type)
		assert.True(t, results[1].Amount.Equal(decimal.NewFromInt(5_000)))
	})

	t.Run("carry-over never overwrites a resolved category", func(t *testing.T) {
		results := p.ParseAll("غدا 10 وتكسي 5")

		require.Len(t, results, 2)
		assert.Equal(t, "transport", results[1].Category)
	})

	t.Run("segments without amounts are dropped", func(t *testing.T) {
		results := p.ParseAll("صرفت 5 على قهوة وشكرا جزيلا")

		require.Len(t, results, 1)
		assert.Equal(t, "food", results[0].Category)
	})

	t.Run("amount-only lead segment survives as other", func(t *testing.T) {
		results := p.ParseAll("25 الف")

		require.Len(t, results, 1)
		assert.Equal(t, CategoryOther, results[0].Category)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, p.ParseAll(""))
		assert.Empty(t, p.ParseAll("   "))
	})

	t.Run("single transaction matches Parse", func(t *testing.T) {
		single := p.Parse("تكسي بخمسة")
		batch := p.ParseAll("تكسي بخمسة")

		require.Len(t, batch, 1)
		assert.Equal(t, single, batch[0])
	})
}
