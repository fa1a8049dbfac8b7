package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"coinwatch/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) ListUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	notifications, err := h.Controller.ListUnreadNotifications(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, notifications, 200)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	notificationID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid notification id"))
		return
	}

	notification, err := h.Controller.MarkNotificationRead(ctx, userID, notificationID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, notification, 200)
}
