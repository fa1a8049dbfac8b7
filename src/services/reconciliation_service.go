package services

import (
	"context"
	"fmt"
	"time"

	"coinwatch/src/config"
	"coinwatch/src/models"
	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
)

type ReconciliationServiceI interface {
	RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionRequest) (*schemas.TransactionResponse, error)
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]schemas.TransactionResponse, error)
}

// ReconciliationService records transactions and keeps the portfolio store,
// the wallet balance store, and the outbox consistent with the ledger. The
// ledger append, both balance deltas, and the outbox entry commit as one
// unit; on partial failure the whole unit rolls back.
type ReconciliationService struct {
	db              *pgxpool.Pool
	ledger          repositories.TransactionRepository
	portfolio       repositories.HoldingRepository
	walletBalances  repositories.HoldingRepository
	outbox          repositories.NotificationRepository
	overdraftPolicy config.OverdraftPolicy
}

func NewReconciliationService(
	db *pgxpool.Pool,
	ledger repositories.TransactionRepository,
	portfolio repositories.HoldingRepository,
	walletBalances repositories.HoldingRepository,
	outbox repositories.NotificationRepository,
	overdraftPolicy config.OverdraftPolicy,
) *ReconciliationService {
	return &ReconciliationService{
		db:              db,
		ledger:          ledger,
		portfolio:       portfolio,
		walletBalances:  walletBalances,
		outbox:          outbox,
		overdraftPolicy: overdraftPolicy,
	}
}

// RecordTransaction appends the transaction to the ledger and, when it is
// successful, propagates its position to the user's portfolio and the
// wallet's balances. Transient storage failures retry the whole unit with
// bounded attempts.
func (s *ReconciliationService) RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionRequest) (*schemas.TransactionResponse, error) {
	t := &models.Transaction{
		UserID:       userID,
		WalletID:     req.WalletID,
		SourceAsset:  req.SourceAsset,
		TargetAsset:  req.TargetAsset,
		ExchangeRate: req.ExchangeRate,
		Position:     req.Position,
		Network:      req.Network,
		Fee:          req.Fee,
		Success:      req.Success,
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.recordOnce(ctx, t); err != nil {
			if repositories.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger := utils.LoggerFromContext(ctx)
	logger.WithFields(map[string]interface{}{
		"transaction_id": t.ID,
		"user_id":        t.UserID,
		"wallet_id":      t.WalletID,
		"asset":          t.SourceAsset,
		"position":       t.Position.String(),
		"success":        t.Success,
	}).Info("transaction recorded")

	return transactionResponse(t), nil
}

func (s *ReconciliationService) recordOnce(ctx context.Context, t *models.Transaction) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// The ledger records every transaction, failed ones included.
	if err := s.ledger.Append(ctx, t, tx); err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}

	if t.Success {
		// Portfolio and wallet track the same economic event at two
		// granularities, so both receive the same delta.
		portfolioRes, err := s.portfolio.ApplyDelta(ctx, t.UserID, t.SourceAsset, t.Position, tx)
		if err != nil {
			return fmt.Errorf("apply portfolio delta: %w", err)
		}
		if err := s.checkOverdraft(portfolioRes); err != nil {
			return err
		}

		walletRes, err := s.walletBalances.ApplyDelta(ctx, t.WalletID, t.SourceAsset, t.Position, tx)
		if err != nil {
			return fmt.Errorf("apply wallet delta: %w", err)
		}
		if err := s.checkOverdraft(walletRes); err != nil {
			return err
		}
	}

	notification := &models.Notification{
		UserID: t.UserID,
		Kind:   models.NotificationKindTransaction,
		Body:   transactionSummary(t),
	}
	if err := s.outbox.Append(ctx, notification, tx); err != nil {
		return fmt.Errorf("append notification: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *ReconciliationService) checkOverdraft(res repositories.DeltaResult) error {
	if s.overdraftPolicy == config.OverdraftReject && res.Quantity.Sign() < 0 {
		return fmt.Errorf("%w: resulting quantity %s", repositories.ErrInsufficientBalance, res.Quantity)
	}
	return nil
}

func (s *ReconciliationService) ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]schemas.TransactionResponse, error) {
	transactions, err := s.ledger.ListBy(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, *transactionResponse(&transactions[i]))
	}
	return responses, nil
}

func transactionSummary(t *models.Transaction) string {
	verb := "Bought"
	amount := t.Position
	if t.Position.Sign() < 0 {
		verb = "Sold"
		amount = t.Position.Neg()
	}
	if !t.Success {
		return fmt.Sprintf("Transaction failed: %s %s on wallet %d was not settled",
			t.SourceAsset, t.Position, t.WalletID)
	}
	return fmt.Sprintf("%s %s %s at rate %s (wallet %d)",
		verb, amount, t.SourceAsset, t.ExchangeRate, t.WalletID)
}

func transactionResponse(t *models.Transaction) *schemas.TransactionResponse {
	return &schemas.TransactionResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		WalletID:     t.WalletID,
		SourceAsset:  t.SourceAsset,
		TargetAsset:  t.TargetAsset,
		ExchangeRate: t.ExchangeRate,
		Position:     t.Position,
		Network:      t.Network,
		Fee:          t.Fee,
		Success:      t.Success,
		Timestamp:    t.Timestamp,
	}
}
