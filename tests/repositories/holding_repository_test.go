package repositories_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"coinwatch/src/repositories"
	"coinwatch/tests/init_test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewPortfolioRepository(db)
	ctx := context.Background()

	t.Run("ApplyDelta creates and accumulates", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		res, err := repo.ApplyDelta(ctx, 1, "bitcoin", decimal.RequireFromString("2.5"), nil)
		require.NoError(t, err)
		require.NotNil(t, res.Holding)
		assert.True(t, res.Quantity.Equal(decimal.RequireFromString("2.5")))

		res, err = repo.ApplyDelta(ctx, 1, "bitcoin", decimal.RequireFromString("1.5"), nil)
		require.NoError(t, err)
		require.NotNil(t, res.Holding)
		assert.True(t, res.Quantity.Equal(decimal.NewFromInt(4)))

		holding, err := repo.Get(ctx, 1, "bitcoin")
		require.NoError(t, err)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("mixed deltas settle at their sum", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.ApplyDelta(ctx, 1, "bitcoin", decimal.NewFromInt(5), nil)
		require.NoError(t, err)
		res, err := repo.ApplyDelta(ctx, 1, "bitcoin", decimal.NewFromInt(-3), nil)
		require.NoError(t, err)
		assert.True(t, res.Quantity.Equal(decimal.NewFromInt(2)))

		holding, err := repo.Get(ctx, 1, "bitcoin")
		require.NoError(t, err)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(2)))
	})

	t.Run("ApplyDelta to zero removes the row", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.ApplyDelta(ctx, 1, "ethereum", decimal.NewFromInt(3), nil)
		require.NoError(t, err)

		res, err := repo.ApplyDelta(ctx, 1, "ethereum", decimal.NewFromInt(-3), nil)
		require.NoError(t, err)
		assert.Nil(t, res.Holding)
		assert.True(t, res.Quantity.IsZero())

		_, err = repo.Get(ctx, 1, "ethereum")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	t.Run("ApplyDelta below zero removes the row and reports the deficit", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.ApplyDelta(ctx, 1, "ethereum", decimal.NewFromInt(3), nil)
		require.NoError(t, err)

		res, err := repo.ApplyDelta(ctx, 1, "ethereum", decimal.NewFromInt(-5), nil)
		require.NoError(t, err)
		assert.Nil(t, res.Holding)
		assert.True(t, res.Quantity.Equal(decimal.NewFromInt(-2)))

		_, err = repo.Get(ctx, 1, "ethereum")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	t.Run("concurrent deltas are not lost", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.ApplyDelta(ctx, 7, "bitcoin", decimal.NewFromInt(10), nil)
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, delta := range []decimal.Decimal{decimal.NewFromInt(5), decimal.NewFromInt(-3)} {
			wg.Add(1)
			go func(d decimal.Decimal) {
				defer wg.Done()
				_, err := repo.ApplyDelta(ctx, 7, "bitcoin", d, nil)
				errs <- err
			}(delta)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		holding, err := repo.Get(ctx, 7, "bitcoin")
		require.NoError(t, err)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(12)),
			"expected 12, got %s", holding.Quantity)
	})

	t.Run("ListByHolder returns holdings sorted by asset", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.ApplyDelta(ctx, 2, "ethereum", decimal.NewFromInt(1), nil)
		require.NoError(t, err)
		_, err = repo.ApplyDelta(ctx, 2, "bitcoin", decimal.NewFromInt(2), nil)
		require.NoError(t, err)
		_, err = repo.ApplyDelta(ctx, 3, "bitcoin", decimal.NewFromInt(9), nil)
		require.NoError(t, err)

		holdings, err := repo.ListByHolder(ctx, 2)
		require.NoError(t, err)
		require.Len(t, holdings, 2)
		assert.Equal(t, "bitcoin", holdings[0].AssetID)
		assert.Equal(t, "ethereum", holdings[1].AssetID)
	})

	t.Run("portfolio and wallet stores are independent", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		walletRepo := repositories.NewWalletBalanceRepository(db)

		_, err := repo.ApplyDelta(ctx, 1, "bitcoin", decimal.NewFromInt(5), nil)
		require.NoError(t, err)

		_, err = walletRepo.Get(ctx, 1, "bitcoin")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})
}
