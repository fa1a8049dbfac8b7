package repositories

import (
	"context"
	"fmt"
	"strconv"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListBy; zero fields are ignored.
type TransactionFilter struct {
	UserID   int
	WalletID int
	AssetID  string
}

// TransactionRepository is the append-only ledger. Records are never
// mutated after Append; balance sufficiency is not checked here.
type TransactionRepository interface {
	Append(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	ListBy(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Append(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO transactions (user_id, wallet_id, source_asset, target_asset, exchange_rate, position, network, fee, success)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, time_transaction`

	return withTx(ctx, r.db, tx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query,
			t.UserID, t.WalletID, t.SourceAsset, t.TargetAsset,
			t.ExchangeRate.String(), t.Position.String(), t.Network, t.Fee.String(), t.Success,
		).Scan(&t.ID, &t.Timestamp)
	})
}

func (r *transactionRepo) ListBy(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := `SELECT id, user_id, wallet_id, source_asset, target_asset, exchange_rate, position, network, fee, success, time_transaction
		FROM transactions`

	var clauses []string
	var args []interface{}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		clauses = append(clauses, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.WalletID != 0 {
		args = append(args, filter.WalletID)
		clauses = append(clauses, "wallet_id = $"+strconv.Itoa(len(args)))
	}
	if filter.AssetID != "" {
		args = append(args, filter.AssetID)
		clauses = append(clauses, "source_asset = $"+strconv.Itoa(len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	// Append order: insertion order must be observable, id breaks timestamp
	// ties within the same microsecond.
	query += " ORDER BY time_transaction ASC, id ASC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanTransaction(rows pgx.Rows) (models.Transaction, error) {
	var t models.Transaction
	var rateStr, positionStr, feeStr string
	if err := rows.Scan(&t.ID, &t.UserID, &t.WalletID, &t.SourceAsset, &t.TargetAsset,
		&rateStr, &positionStr, &t.Network, &feeStr, &t.Success, &t.Timestamp); err != nil {
		return models.Transaction{}, err
	}

	var err error
	if t.ExchangeRate, err = decimal.NewFromString(rateStr); err != nil {
		return models.Transaction{}, fmt.Errorf("parse exchange rate: %w", err)
	}
	if t.Position, err = decimal.NewFromString(positionStr); err != nil {
		return models.Transaction{}, fmt.Errorf("parse position: %w", err)
	}
	if t.Fee, err = decimal.NewFromString(feeStr); err != nil {
		return models.Transaction{}, fmt.Errorf("parse fee: %w", err)
	}
	return t, nil
}
