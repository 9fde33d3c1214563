package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(100), GHS)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
		assert.Equal(t, GHS, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyGHSFromFloat(100.50)
	b := NewMoneyGHSFromFloat(49.50)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(150)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(51)))
	})

	t.Run("multiply", func(t *testing.T) {
		m := NewMoneyGHSFromFloat(1000)
		result := m.Multiply(decimal.NewFromFloat(0.05))
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(50)))
	})

	t.Run("mismatched currencies rejected", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(10), USD)
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.Error(t, err)
	})
}

func TestMoneyRound(t *testing.T) {
	// Half-up at two decimal places
	m := NewMoneyGHSFromFloat(1.005)
	assert.Equal(t, "1.01", m.Round(2).Amount().StringFixed(2))

	m = NewMoneyGHSFromFloat(1.004)
	assert.Equal(t, "1.00", m.Round(2).Amount().StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyGHSFromFloat(100)
	b := NewMoneyGHSFromFloat(200)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyGHSFromFloat(100)))
	assert.False(t, a.Equals(b))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyGHSFromFloat(1250.75)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestZeroGHS(t *testing.T) {
	z := ZeroGHS()
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, GHS, z.Currency())
}
