package repositories_test

import (
	"context"
	"errors"
	"testing"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/tests/init_test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewAlertRepository(db)
	ctx := context.Background()

	t.Run("Create persists subscription and target together", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "subscriber")

		sub := &models.AlertSubscription{UserID: userID, AssetID: "bitcoin"}
		target := &models.PriceAlertTarget{
			TargetPrice:         decimal.NewFromInt(70000),
			ThresholdPercentage: decimal.RequireFromString("0.05"),
		}
		require.NoError(t, repo.Create(ctx, sub, target))
		assert.NotZero(t, sub.ID)
		assert.True(t, sub.Active)
		assert.Equal(t, sub.ID, target.AlertID)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.True(t, active[0].Target.TargetPrice.Equal(decimal.NewFromInt(70000)))
	})

	t.Run("Create rejects non-positive target price", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "subscriber")

		sub := &models.AlertSubscription{UserID: userID, AssetID: "bitcoin"}
		target := &models.PriceAlertTarget{TargetPrice: decimal.Zero}
		err := repo.Create(ctx, sub, target)
		assert.True(t, errors.Is(err, repositories.ErrInvalidInput))

		target.TargetPrice = decimal.NewFromInt(-5)
		err = repo.Create(ctx, sub, target)
		assert.True(t, errors.Is(err, repositories.ErrInvalidInput))
	})

	t.Run("Deactivate is idempotent", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "subscriber")

		sub := &models.AlertSubscription{UserID: userID, AssetID: "ethereum"}
		target := &models.PriceAlertTarget{TargetPrice: decimal.NewFromInt(4000)}
		require.NoError(t, repo.Create(ctx, sub, target))

		deactivated, err := repo.Deactivate(ctx, sub.ID)
		require.NoError(t, err)
		assert.False(t, deactivated.Active)

		again, err := repo.Deactivate(ctx, sub.ID)
		require.NoError(t, err)
		assert.False(t, again.Active)

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("Deactivate unknown id returns not found", func(t *testing.T) {
		init_test.TruncateTables(t, db)

		_, err := repo.Deactivate(ctx, 424242)
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})

	t.Run("ListActiveByUser scopes to the user", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		alice := init_test.SeedUser(t, db, "alice")
		bob := init_test.SeedUser(t, db, "bob")

		for _, userID := range []int{alice, alice, bob} {
			sub := &models.AlertSubscription{UserID: userID, AssetID: "bitcoin"}
			target := &models.PriceAlertTarget{TargetPrice: decimal.NewFromInt(70000)}
			require.NoError(t, repo.Create(ctx, sub, target))
		}

		subs, err := repo.ListActiveByUser(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, subs, 2)
	})
}
