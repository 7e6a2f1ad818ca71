//go:build unit

package wallet_test

import (
	"errors"
	"testing"

	"prize-wheel/internal/domain/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalance(t *testing.T) {
	t.Run("negative start is rejected", func(t *testing.T) {
		_, err := wallet.NewBalance(-1)
		assert.ErrorIs(t, err, wallet.ErrNegativeBalance)
	})

	t.Run("debit", func(t *testing.T) {
		b, err := wallet.NewBalance(10)
		require.NoError(t, err)

		after, err := b.Debit(3)
		require.NoError(t, err)
		assert.Equal(t, 7, after.Amount())
		assert.Equal(t, 10, b.Amount(), "receiver is unchanged")
	})

	t.Run("debit to exactly zero", func(t *testing.T) {
		b, _ := wallet.NewBalance(3)
		after, err := b.Debit(3)
		require.NoError(t, err)
		assert.Zero(t, after.Amount())
	})

	t.Run("insufficient funds carries amounts", func(t *testing.T) {
		b, _ := wallet.NewBalance(2)
		after, err := b.Debit(3)

		require.ErrorIs(t, err, wallet.ErrInsufficientFunds)
		var insufficient *wallet.InsufficientFundsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, 3, insufficient.Required)
		assert.Equal(t, 2, insufficient.Available)
		assert.Equal(t, 2, after.Amount())
	})

	t.Run("negative amounts", func(t *testing.T) {
		b, _ := wallet.NewBalance(5)
		_, err := b.Debit(-1)
		assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
		_, err = b.Credit(-1)
		assert.ErrorIs(t, err, wallet.ErrInvalidAmount)
	})

	t.Run("credit and affordability", func(t *testing.T) {
		var b wallet.Balance
		assert.False(t, b.CanAfford(3))
		assert.True(t, b.CanAfford(0))

		b, err := b.Credit(10)
		require.NoError(t, err)
		assert.True(t, b.CanAfford(3))
		assert.Equal(t, 10, b.Amount())
	})
}
