package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m := NewMoney(decimal.NewFromFloat(100.50), "GBP")
	assert.Equal(t, Currency("GBP"), m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))

	assert.Equal(t, DefaultCurrency, NewMoney(decimal.NewFromInt(1), "").Currency())
}

func TestParseMoney(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := ParseMoney("123.45", USD)
		require.NoError(t, err)
		assert.Equal(t, "123.45", m.Number())
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := ParseMoney("not-a-number", USD)
		assert.Error(t, err)
	})

	t.Run("must panics on invalid", func(t *testing.T) {
		assert.Panics(t, func() { MustMoney("1,00", USD) })
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("same currency", func(t *testing.T) {
		sum, err := MustMoney("1.50", USD).Add(MustMoney("2.25", USD))
		require.NoError(t, err)
		assert.Equal(t, "3.75", sum.Number())
	})

	t.Run("zero value adopts currency", func(t *testing.T) {
		sum, err := Money{}.Add(MustMoney("4", "EUR"))
		require.NoError(t, err)
		assert.Equal(t, Currency("EUR"), sum.Currency())
	})

	t.Run("currency mismatch", func(t *testing.T) {
		_, err := MustMoney("1", USD).Add(MustMoney("1", "EUR"))
		assert.Error(t, err)
	})
}

func TestMoney_Round(t *testing.T) {
	assert.Equal(t, "1.01", MustMoney("1.005", USD).Round(2).Number())
	assert.Equal(t, "2.00", MustMoney("2.004", USD).Round(2).Number())
	assert.Equal(t, "-1.01", MustMoney("-1.005", USD).Round(2).Number())
}

func TestMoney_Number(t *testing.T) {
	assert.Equal(t, "-5.00", MustMoney("-5", USD).Number())
	assert.Equal(t, "19.99", MustMoney("19.990000", USD).Number())
	assert.Equal(t, "19.99 USD", MustMoney("19.99", USD).String())
}
