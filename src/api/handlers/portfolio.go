package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"coinwatch/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, 200)
}

func (h *Handler) GetWalletBalances(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	walletID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid wallet id"))
		return
	}

	// The wallet must belong to the authenticated user.
	wallet, err := h.Controller.GetWallet(ctx, walletID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	if wallet.UserID != userID {
		h.HandleErrors(w, utils.NotFound("wallet not found"))
		return
	}

	balances, err := h.Controller.GetWalletBalances(ctx, walletID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, balances, 200)
}
