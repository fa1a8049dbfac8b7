package controllers

import (
	"context"

	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
)

type TransactionController interface {
	RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionRequest) (*schemas.TransactionResponse, error)
	ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]schemas.TransactionResponse, error)
}

func (c *Controller) RecordTransaction(ctx context.Context, userID int, req *schemas.TransactionRequest) (*schemas.TransactionResponse, error) {
	return c.Reconciliation.RecordTransaction(ctx, userID, req)
}

func (c *Controller) ListTransactions(ctx context.Context, filter repositories.TransactionFilter) ([]schemas.TransactionResponse, error) {
	return c.Reconciliation.ListTransactions(ctx, filter)
}
