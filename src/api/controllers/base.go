package controllers

import (
	"coinwatch/src/repositories"
	"coinwatch/src/services"
)

type IController interface {
	TokenController
	TransactionController
	AlertController
	PortfolioController
	NotificationController
	WalletController
	PriceController
}

type Controller struct {
	Users          services.UserServiceI
	Reconciliation services.ReconciliationServiceI
	Alerts         services.AlertServiceI
	Portfolio      services.PortfolioServiceI
	Prices         services.PriceServiceI
	Notifications  repositories.NotificationRepository
	Wallets        repositories.WalletRepository
}

func NewController(
	users services.UserServiceI,
	reconciliation services.ReconciliationServiceI,
	alerts services.AlertServiceI,
	portfolio services.PortfolioServiceI,
	prices services.PriceServiceI,
	notifications repositories.NotificationRepository,
	wallets repositories.WalletRepository,
) *Controller {
	return &Controller{
		Users:          users,
		Reconciliation: reconciliation,
		Alerts:         alerts,
		Portfolio:      portfolio,
		Prices:         prices,
		Notifications:  notifications,
		Wallets:        wallets,
	}
}
