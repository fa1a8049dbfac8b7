package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"coinwatch/src/repositories"
	"coinwatch/src/schemas"
	"coinwatch/src/utils"
)

func (h *Handler) RecordTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	var req = new(schemas.TransactionRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if req.WalletID == 0 || req.SourceAsset == "" {
		h.HandleErrors(w, utils.BadRequest("wallet_id and source_asset are required"))
		return
	}
	if req.Position.IsZero() {
		h.HandleErrors(w, utils.BadRequest("position must be non-zero"))
		return
	}

	transaction, err := h.Controller.RecordTransaction(ctx, userID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transaction, http.StatusCreated)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	filter := repositories.TransactionFilter{UserID: userID}
	if walletStr := r.URL.Query().Get("wallet_id"); walletStr != "" {
		walletID, err := strconv.Atoi(walletStr)
		if err != nil {
			h.HandleErrors(w, utils.BadRequest("invalid wallet_id"))
			return
		}
		filter.WalletID = walletID
	}
	filter.AssetID = r.URL.Query().Get("asset_id")

	transactions, err := h.Controller.ListTransactions(ctx, filter)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, transactions, 200)
}
