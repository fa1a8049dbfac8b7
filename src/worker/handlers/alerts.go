package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	refreshed, err := h.Controller.RefreshPrices(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]int{"refreshed": refreshed}, 200)
}

func (h *Handler) RunAlertCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	matched, err := h.Controller.RunAlertCheck(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]int{"matched": matched}, 200)
}
