package controllers

import (
	"sync"

	"coinwatch/src/scheduler"
	"coinwatch/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	Prices services.PriceServiceI
	Alerts services.AlertServiceI
	Logger *logrus.Logger

	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(prices services.PriceServiceI, alerts services.AlertServiceI, logger *logrus.Logger) *Controller {
	return &Controller{
		Prices:     prices,
		Alerts:     alerts,
		Logger:     logger,
		Schedulers: map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	return c.Schedulers
}
