package api

import (
	"net/http"
	"time"

	handlers "coinwatch/src/api/handlers"
	"coinwatch/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Post("/token", s.Handler.PostToken)
	s.Router.Post("/api/users", s.Handler.RegisterUser)

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.Handler.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Route("/api/wallets", func(r chi.Router) {
			r.Get("/", s.Handler.ListWallets)
			r.Post("/", s.Handler.CreateWallet)
			r.Get("/{id}/balances", s.Handler.GetWalletBalances)
		})

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.ListTransactions)
			r.Post("/", s.Handler.RecordTransaction)
		})

		r.Route("/api/alerts", func(r chi.Router) {
			r.Get("/", s.Handler.ListAlerts)
			r.Post("/", s.Handler.CreateAlert)
			r.Delete("/{id}", s.Handler.DeactivateAlert)
		})

		r.Route("/api/notifications", func(r chi.Router) {
			r.Get("/", s.Handler.ListUnreadNotifications)
			r.Put("/{id}/read", s.Handler.MarkNotificationRead)
		})

		r.Get("/api/portfolio", s.Handler.GetPortfolio)
		r.Get("/api/prices/{assetID}", s.Handler.GetLatestPrice)
	})
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
