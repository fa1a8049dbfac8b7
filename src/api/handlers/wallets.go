package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"coinwatch/src/schemas"
	"coinwatch/src/utils"
)

func (h *Handler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	var req schemas.WalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if req.Name == "" {
		h.HandleErrors(w, utils.BadRequest("name is required"))
		return
	}

	wallet, err := h.Controller.CreateWallet(ctx, userID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, wallet, 201)
}

func (h *Handler) ListWallets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	wallets, err := h.Controller.ListWallets(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, wallets, 200)
}
