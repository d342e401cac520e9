package app

import (
	"context"
	"strconv"
	"time"

	"github.com/cgdmohamed/NexusCore-sub001/internal/config"
	"github.com/cgdmohamed/NexusCore-sub001/internal/errors"
	"github.com/cgdmohamed/NexusCore-sub001/pkg/log"
)

type ScheduledDispatchHandler interface {
	DispatchDue(ctx context.Context) (int, error)
}

// NotificationDispatchProcess periodically delivers the email channel of
// scheduled notifications whose time has arrived.
type NotificationDispatchProcess struct {
	handler ScheduledDispatchHandler
	config  config.Process
}

func NewNotificationDispatchProcess(h ScheduledDispatchHandler, cfg config.Process) *NotificationDispatchProcess {
	return &NotificationDispatchProcess{handler: h, config: cfg}
}

// Run runs the dispatch loop until the context is cancelled.
func (p *NotificationDispatchProcess) Run(ctx context.Context) error {
	logger := log.For("notification-dispatch")

	interval, err := strconv.Atoi(p.config.Interval)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			tickCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			dispatched, err := p.handler.DispatchDue(tickCtx)
			cancel()
			if err != nil {
				logger.Error().Err(err).Msg(errors.ErrFailedDispatchNotifications)
				continue
			}
			if dispatched > 0 {
				logger.Info().Int("count", dispatched).Msg("scheduled notifications dispatched")
			}
		}
	}
}
