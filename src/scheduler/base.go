package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ScheduledTask runs a named task on a cron schedule. Task failures are
// logged and never stop the schedule.
type ScheduledTask struct {
	name   string
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
}

func NewScheduledTask(
	name, cronSpec string,
	logger *logrus.Logger,
	taskFunc func(ctx context.Context) error,
) (*ScheduledTask, error) {
	c := cron.New()
	cancel := make(chan struct{})
	task := &ScheduledTask{
		name:   name,
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
		}
		ctx, cancelRun := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancelRun()
		if err := taskFunc(ctx); err != nil {
			logger.WithField("task", name).Errorf("scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

func (s *ScheduledTask) Name() string {
	return s.name
}

func (s *ScheduledTask) Cancel() {
	s.cron.Remove(s.cronID)
	close(s.cancel)
}
