package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"coinwatch/src/schemas"
	"coinwatch/src/utils"
)

func (h *Handler) PostToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var tokenRequestCreds = new(schemas.TokenRequest)
	if err := json.NewDecoder(r.Body).Decode(tokenRequestCreds); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	tokenResponse, err := h.Controller.PostToken(ctx, tokenRequestCreds.Username, tokenRequestCreds.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, tokenResponse, 200)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req = new(schemas.UserRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.HandleErrors(w, utils.BadRequest("username, email and password are required"))
		return
	}

	user, err := h.Controller.RegisterUser(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, user, http.StatusCreated)
}
