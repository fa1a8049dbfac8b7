package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"coinwatch/src/clients/coingecko"
	"coinwatch/src/config"
	"coinwatch/src/database"
	"coinwatch/src/repositories"
	"coinwatch/src/services"
	"coinwatch/src/utils"
	redis_utils "coinwatch/src/utils/redis"
	"coinwatch/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
}

func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	pool, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var cache *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		cache, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			cache = nil
		}
	}

	alerts := repositories.NewAlertRepository(pool)
	prices := repositories.NewPriceRepository(pool)
	notifications := repositories.NewNotificationRepository(pool)
	feed := coingecko.NewClient(cfg)

	controller := controllers.NewController(
		services.NewPriceService(feed, prices, alerts, cache),
		services.NewAlertService(alerts, prices, notifications, cfg.Alerts.MatchBand),
		logger,
	)

	if err := controller.ScheduleAlertCheck(cfg.Alerts.CheckCron); err != nil {
		return nil, err
	}

	return &Handler{Controller: controller}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case err != nil:
		if !errors.As(utils.FromStorageError(err), &httpErr) {
			httpErr = &utils.HTTPError{Code: http.StatusInternalServerError, Message: "Internal Server Error"}
		}
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
