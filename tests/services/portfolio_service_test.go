package services_test

import (
	"context"
	"testing"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/services"
	"coinwatch/tests/init_test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioService(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	portfolio := repositories.NewPortfolioRepository(db)
	walletBalances := repositories.NewWalletBalanceRepository(db)
	prices := repositories.NewPriceRepository(db)
	svc := services.NewPortfolioService(portfolio, walletBalances, prices)

	t.Run("holdings are valued against the latest price", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := portfolio.ApplyDelta(ctx, 1, "bitcoin", decimal.NewFromInt(2), nil)
		require.NoError(t, err)
		require.NoError(t, prices.Save(ctx, &models.Price{
			AssetID:      "bitcoin",
			CurrentPrice: decimal.NewFromInt(65000),
		}))

		resp, err := svc.GetPortfolio(ctx, 1)
		require.NoError(t, err)
		require.Len(t, resp.Holdings, 1)
		require.NotNil(t, resp.Holdings[0].Price)
		require.NotNil(t, resp.Holdings[0].Value)
		assert.True(t, resp.Holdings[0].Value.Equal(decimal.NewFromInt(130000)))
	})

	t.Run("holdings without a price stay unvalued", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := portfolio.ApplyDelta(ctx, 1, "obscurecoin", decimal.NewFromInt(3), nil)
		require.NoError(t, err)

		resp, err := svc.GetPortfolio(ctx, 1)
		require.NoError(t, err)
		require.Len(t, resp.Holdings, 1)
		assert.Nil(t, resp.Holdings[0].Price)
		assert.Nil(t, resp.Holdings[0].Value)
	})

	t.Run("wallet balances read from the wallet store", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := walletBalances.ApplyDelta(ctx, 9, "ethereum", decimal.NewFromInt(4), nil)
		require.NoError(t, err)

		resp, err := svc.GetWalletBalances(ctx, 9)
		require.NoError(t, err)
		require.Len(t, resp.Holdings, 1)
		assert.Equal(t, "ethereum", resp.Holdings[0].AssetID)

		empty, err := svc.GetPortfolio(ctx, 9)
		require.NoError(t, err)
		assert.Empty(t, empty.Holdings)
	})
}
