package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDinars(t *testing.T) {
	tests := []struct {
		name      string
		dinars    int64
		wantMinor int64
	}{
		{"taxi fare", 5_000, 5_000_000},
		{"salary", 1_500_000, 1_500_000_000},
		{"small note", 250, 250_000},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FromDinars(decimal.NewFromInt(tt.dinars))
			assert.Equal(t, tt.wantMinor, m.Amount())
			assert.Equal(t, IQD, m.Currency())
		})
	}
}

func TestToDecimal_RoundTrip(t *testing.T) {
	for _, dinars := range []int64{0, 500, 5_000, 1_500_000} {
		d := decimal.NewFromInt(dinars)
		got := FromDinars(d).ToDecimal()
		assert.True(t, got.Equal(d), "got %s want %s", got, d)
	}
}

func TestAdd(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		a := FromDinars(decimal.NewFromInt(3_000))
		b := FromDinars(decimal.NewFromInt(2_000))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.ToDecimal().Equal(decimal.NewFromInt(5_000)))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		a := New(100, IQD)
		b := New(100, "USD")

		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("nil receiver behaves as zero", func(t *testing.T) {
		var a *Money
		b := FromDinars(decimal.NewFromInt(1_000))

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Equals(b))
	})
}

func TestPredicates(t *testing.T) {
	assert.True(t, Zero(IQD).IsZero())
	assert.False(t, Zero(IQD).IsPositive())
	assert.True(t, FromDinars(decimal.NewFromInt(1)).IsPositive())

	var nilMoney *Money
	assert.True(t, nilMoney.IsZero())
	assert.False(t, nilMoney.IsPositive())
}

func TestDisplay(t *testing.T) {
	m := FromDinars(decimal.NewFromInt(5_000))
	assert.NotEmpty(t, m.Display())

	var nilMoney *Money
	assert.NotEmpty(t, nilMoney.Display())
}
