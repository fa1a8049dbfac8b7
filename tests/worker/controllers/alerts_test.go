package controllers_test

import (
	"context"
	"errors"
	"testing"

	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/services"
	"coinwatch/src/worker/controllers"
	"coinwatch/tests/init_test"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	prices map[string]decimal.Decimal
	err    error
}

func (f *stubFeed) FetchPrices(_ context.Context, assetIDs []string) ([]schemas.PriceData, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []schemas.PriceData
	for _, id := range assetIDs {
		if price, ok := f.prices[id]; ok {
			out = append(out, schemas.PriceData{AssetID: id, CurrentPrice: price})
		}
	}
	return out, nil
}

func newWorkerController(db *pgxpool.Pool, feed services.PriceFeed) *controllers.Controller {
	alerts := repositories.NewAlertRepository(db)
	prices := repositories.NewPriceRepository(db)
	notifications := repositories.NewNotificationRepository(db)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return controllers.NewController(
		services.NewPriceService(feed, prices, alerts, nil),
		services.NewAlertService(alerts, prices, notifications, 0.10),
		logger,
	)
}

func TestWorkerController(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	t.Run("RunAlertCheck refreshes and matches in one cycle", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "watcher")

		alerts := repositories.NewAlertRepository(db)
		sub := &models.AlertSubscription{UserID: userID, AssetID: "bitcoin"}
		target := &models.PriceAlertTarget{TargetPrice: decimal.NewFromInt(100)}
		require.NoError(t, alerts.Create(ctx, sub, target))

		feed := &stubFeed{prices: map[string]decimal.Decimal{
			"bitcoin": decimal.NewFromInt(105),
		}}
		controller := newWorkerController(db, feed)

		matched, err := controller.RunAlertCheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, matched)

		outbox := repositories.NewNotificationRepository(db)
		unread, err := outbox.ListUnreadByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, unread, 1)
	})

	t.Run("refresh failure still matches against stored prices", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "watcher")

		alerts := repositories.NewAlertRepository(db)
		sub := &models.AlertSubscription{UserID: userID, AssetID: "bitcoin"}
		target := &models.PriceAlertTarget{TargetPrice: decimal.NewFromInt(100)}
		require.NoError(t, alerts.Create(ctx, sub, target))

		prices := repositories.NewPriceRepository(db)
		require.NoError(t, prices.Save(ctx, &models.Price{
			AssetID:      "bitcoin",
			CurrentPrice: decimal.NewFromInt(100),
		}))

		controller := newWorkerController(db, &stubFeed{err: errors.New("feed down")})

		matched, err := controller.RunAlertCheck(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, matched)
	})

	t.Run("ScheduleAlertCheck registers and replaces the schedule", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		controller := newWorkerController(db, &stubFeed{})

		require.NoError(t, controller.ScheduleAlertCheck("@every 1h"))
		first := controller.GetSchedulers()["alert-check"]
		require.NotNil(t, first)

		require.NoError(t, controller.ScheduleAlertCheck("@every 2h"))
		second := controller.GetSchedulers()["alert-check"]
		require.NotNil(t, second)
		assert.NotSame(t, first, second)
		second.Cancel()
	})

	t.Run("invalid cron spec is rejected", func(t *testing.T) {
		controller := newWorkerController(db, &stubFeed{})
		assert.Error(t, controller.ScheduleAlertCheck("not a cron spec"))
	})
}
