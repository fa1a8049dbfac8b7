package handlers

import (
	"context"
	"net/http"
	"time"

	"coinwatch/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetLatestPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	assetID := chi.URLParam(r, "assetID")
	if assetID == "" {
		h.HandleErrors(w, utils.BadRequest("asset id is required"))
		return
	}

	price, err := h.Controller.GetLatestPrice(ctx, assetID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, price, 200)
}
