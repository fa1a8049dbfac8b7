package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"coinwatch/src/api/controllers"
	"coinwatch/src/clients/coingecko"
	"coinwatch/src/config"
	"coinwatch/src/database"
	"coinwatch/src/repositories"
	"coinwatch/src/services"
	"coinwatch/src/utils"
	redis_utils "coinwatch/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Handler struct {
	Controller controllers.IController
	TokenAuth  *jwtauth.JWTAuth
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	pool, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	dsn := cfg.Databases.SQL.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Databases.SQL.Host,
			cfg.Databases.SQL.Username,
			cfg.Databases.SQL.Password,
			cfg.Databases.SQL.Database,
			cfg.Databases.SQL.Port)
	}
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	var cache *redis_utils.RedisHandler
	if cfg.Databases.Redis.Host != "" {
		cache, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			// Redis is an optimization; the repositories remain the
			// source of truth.
			cache = nil
		}
	}

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)

	ledger := repositories.NewTransactionRepository(pool)
	portfolio := repositories.NewPortfolioRepository(pool)
	walletBalances := repositories.NewWalletBalanceRepository(pool)
	alerts := repositories.NewAlertRepository(pool)
	notifications := repositories.NewNotificationRepository(pool)
	prices := repositories.NewPriceRepository(pool)
	wallets := repositories.NewWalletRepository(pool)

	feed := coingecko.NewClient(cfg)

	controller := controllers.NewController(
		services.NewUserService(gormDB, tokenAuth, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour),
		services.NewReconciliationService(pool, ledger, portfolio, walletBalances, notifications, cfg.Ledger.OverdraftPolicy),
		services.NewAlertService(alerts, prices, notifications, cfg.Alerts.MatchBand),
		services.NewPortfolioService(portfolio, walletBalances, prices),
		services.NewPriceService(feed, prices, alerts, cache),
		notifications,
		wallets,
	)

	return &Handler{Controller: controller, TokenAuth: tokenAuth}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps service and storage errors onto HTTP responses.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrInvalidCredentials) {
		utils.WriteError(w, utils.Unauthorized("invalid credentials"))
		return
	}
	utils.WriteError(w, utils.FromStorageError(err))
}

// Healthcheck reports liveness.
func Healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}

// userIDFromRequest extracts the authenticated user id from JWT claims.
func userIDFromRequest(r *http.Request) (int, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, err
	}
	raw, ok := claims["user_id"]
	if !ok {
		return 0, errors.New("token missing user_id claim")
	}
	switch v := raw.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("unexpected user_id claim type %T", raw)
	}
}
