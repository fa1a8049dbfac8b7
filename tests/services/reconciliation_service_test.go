package services_test

import (
	"context"
	"errors"
	"testing"

	"coinwatch/src/config"
	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/services"
	"coinwatch/tests/init_test"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingHoldingRepo delegates to a real balance store but fails ApplyDelta,
// to verify that a partial failure rolls back the whole unit.
type failingHoldingRepo struct {
	repositories.HoldingRepository
}

var errInjected = errors.New("injected balance store failure")

func (r *failingHoldingRepo) ApplyDelta(_ context.Context, _ int, _ string, _ decimal.Decimal, _ pgx.Tx) (repositories.DeltaResult, error) {
	return repositories.DeltaResult{}, errInjected
}

func newReconciliationService(db *pgxpool.Pool, policy config.OverdraftPolicy) *services.ReconciliationService {
	return services.NewReconciliationService(
		db,
		repositories.NewTransactionRepository(db),
		repositories.NewPortfolioRepository(db),
		repositories.NewWalletBalanceRepository(db),
		repositories.NewNotificationRepository(db),
		policy,
	)
}

func TestReconciliationService(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	t.Run("successful transaction updates ledger, balances and outbox", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")
		svc := newReconciliationService(db, config.OverdraftClamp)

		resp, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:     walletID,
			SourceAsset:  "bitcoin",
			ExchangeRate: decimal.NewFromInt(65000),
			Position:     decimal.NewFromInt(2),
			Success:      true,
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)

		portfolio := repositories.NewPortfolioRepository(db)
		holding, err := portfolio.Get(ctx, userID, "bitcoin")
		require.NoError(t, err)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(2)))

		walletBalances := repositories.NewWalletBalanceRepository(db)
		balance, err := walletBalances.Get(ctx, walletID, "bitcoin")
		require.NoError(t, err)
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(2)))

		outbox := repositories.NewNotificationRepository(db)
		unread, err := outbox.ListUnreadByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, models.NotificationKindTransaction, unread[0].Kind)
	})

	t.Run("buy then full sell leaves no holding", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")
		svc := newReconciliationService(db, config.OverdraftClamp)

		for _, position := range []int64{2, -2} {
			_, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
				WalletID:    walletID,
				SourceAsset: "bitcoin",
				Position:    decimal.NewFromInt(position),
				Success:     true,
			})
			require.NoError(t, err)
		}

		portfolio := repositories.NewPortfolioRepository(db)
		_, err := portfolio.Get(ctx, userID, "bitcoin")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))

		ledger := repositories.NewTransactionRepository(db)
		transactions, err := ledger.ListBy(ctx, repositories.TransactionFilter{UserID: userID})
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})

	t.Run("failed transaction is ledgered but does not touch balances", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")
		svc := newReconciliationService(db, config.OverdraftClamp)

		_, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(5),
			Success:     false,
		})
		require.NoError(t, err)

		portfolio := repositories.NewPortfolioRepository(db)
		_, err = portfolio.Get(ctx, userID, "bitcoin")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))

		// The outcome is still reported.
		outbox := repositories.NewNotificationRepository(db)
		unread, err := outbox.ListUnreadByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, unread, 1)
	})

	t.Run("partial failure rolls back the whole unit", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")

		svc := services.NewReconciliationService(
			db,
			repositories.NewTransactionRepository(db),
			repositories.NewPortfolioRepository(db),
			&failingHoldingRepo{repositories.NewWalletBalanceRepository(db)},
			repositories.NewNotificationRepository(db),
			config.OverdraftClamp,
		)

		_, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(2),
			Success:     true,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInjected))

		ledger := repositories.NewTransactionRepository(db)
		transactions, err := ledger.ListBy(ctx, repositories.TransactionFilter{UserID: userID})
		require.NoError(t, err)
		assert.Empty(t, transactions, "ledger append must roll back with the failed delta")

		portfolio := repositories.NewPortfolioRepository(db)
		_, err = portfolio.Get(ctx, userID, "bitcoin")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))

		outbox := repositories.NewNotificationRepository(db)
		unread, err := outbox.ListUnreadByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, unread)
	})

	t.Run("reject policy refuses overdrafts", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")
		svc := newReconciliationService(db, config.OverdraftReject)

		_, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(1),
			Success:     true,
		})
		require.NoError(t, err)

		_, err = svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(-3),
			Success:     true,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, repositories.ErrInsufficientBalance))

		// The rejected transaction must not reach the ledger.
		ledger := repositories.NewTransactionRepository(db)
		transactions, err := ledger.ListBy(ctx, repositories.TransactionFilter{UserID: userID})
		require.NoError(t, err)
		assert.Len(t, transactions, 1)

		portfolio := repositories.NewPortfolioRepository(db)
		holding, err := portfolio.Get(ctx, userID, "bitcoin")
		require.NoError(t, err)
		assert.True(t, holding.Quantity.Equal(decimal.NewFromInt(1)))
	})

	t.Run("clamp policy removes the overdrawn holding", func(t *testing.T) {
		init_test.TruncateTables(t, db)
		userID := init_test.SeedUser(t, db, "trader")
		walletID := init_test.SeedWallet(t, db, userID, "main")
		svc := newReconciliationService(db, config.OverdraftClamp)

		_, err := svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(1),
			Success:     true,
		})
		require.NoError(t, err)

		_, err = svc.RecordTransaction(ctx, userID, &schemas.TransactionRequest{
			WalletID:    walletID,
			SourceAsset: "bitcoin",
			Position:    decimal.NewFromInt(-3),
			Success:     true,
		})
		require.NoError(t, err)

		portfolio := repositories.NewPortfolioRepository(db)
		_, err = portfolio.Get(ctx, userID, "bitcoin")
		assert.True(t, errors.Is(err, repositories.ErrNotFound))
	})
}
