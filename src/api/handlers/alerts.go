package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"coinwatch/src/schemas"
	"coinwatch/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	var req = new(schemas.AlertRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if req.AssetID == "" {
		h.HandleErrors(w, utils.BadRequest("asset_id is required"))
		return
	}

	alert, err := h.Controller.CreateAlert(ctx, userID, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, alert, http.StatusCreated)
}

func (h *Handler) DeactivateAlert(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	alertID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid alert id"))
		return
	}

	alert, err := h.Controller.DeactivateAlert(ctx, userID, alertID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, alert, 200)
}

func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, err := userIDFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized(err.Error()))
		return
	}

	alerts, err := h.Controller.ListAlerts(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, alerts, 200)
}
