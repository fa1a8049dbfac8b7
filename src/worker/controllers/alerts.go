package controllers

import (
	"context"

	"coinwatch/src/scheduler"
)

const alertCheckTask = "alert-check"

// RefreshPrices pulls a fresh observation for every asset with an active
// alert subscription.
func (c *Controller) RefreshPrices(ctx context.Context) (int, error) {
	return c.Prices.RefreshPrices(ctx)
}

// RunAlertCheck refreshes prices and then runs the matching pass. A refresh
// failure does not abort the check; matching runs against whatever the
// stores already hold.
func (c *Controller) RunAlertCheck(ctx context.Context) (int, error) {
	if _, err := c.Prices.RefreshPrices(ctx); err != nil {
		c.Logger.Warnf("price refresh failed, matching against stored prices: %v", err)
	}

	matched, err := c.Alerts.CheckPriceAlerts(ctx)
	if err != nil {
		return matched, err
	}
	c.Logger.WithField("matched", matched).Info("alert check completed")
	return matched, nil
}

// ScheduleAlertCheck registers the recurring alert check, replacing any
// schedule already in place.
func (c *Controller) ScheduleAlertCheck(cronSpec string) error {
	c.SchedulerMutex.Lock()
	if existing, ok := c.Schedulers[alertCheckTask]; ok {
		existing.Cancel()
		delete(c.Schedulers, alertCheckTask)
	}
	c.SchedulerMutex.Unlock()

	task, err := scheduler.NewScheduledTask(alertCheckTask, cronSpec, c.Logger, func(ctx context.Context) error {
		_, err := c.RunAlertCheck(ctx)
		return err
	})
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[alertCheckTask] = task
	c.SchedulerMutex.Unlock()

	return nil
}
