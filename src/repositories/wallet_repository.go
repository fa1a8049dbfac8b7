package repositories

import (
	"context"

	"coinwatch/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletRepository interface {
	Create(ctx context.Context, w *models.Wallet) error
	GetByID(ctx context.Context, walletID int) (*models.Wallet, error)
	ListByUser(ctx context.Context, userID int) ([]models.Wallet, error)
}

type walletRepo struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) WalletRepository {
	return &walletRepo{db: db}
}

func (r *walletRepo) Create(ctx context.Context, w *models.Wallet) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO wallets (user_id, name, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		w.UserID, w.Name, w.Address,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil && IsUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (r *walletRepo) GetByID(ctx context.Context, walletID int) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, address, created_at FROM wallets WHERE id = $1`,
		walletID,
	).Scan(&w.ID, &w.UserID, &w.Name, &w.Address, &w.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &w, nil
}

func (r *walletRepo) ListByUser(ctx context.Context, userID int) ([]models.Wallet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, address, created_at FROM wallets WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wallets []models.Wallet
	for rows.Next() {
		var w models.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Address, &w.CreatedAt); err != nil {
			return nil, err
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}
