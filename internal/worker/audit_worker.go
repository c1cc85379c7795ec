package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/events"
)

// StartAuditWorker subscribes structured-log handlers for session and
// aggregation lifecycle events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	logEvent := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(events.EventSessionRestored, logEvent)
	dispatcher.Subscribe(events.EventSessionRestoreFailed, logEvent)
	dispatcher.Subscribe(events.EventSessionCleared, logEvent)
	dispatcher.Subscribe(events.EventOrderContextDegraded, logEvent)
	dispatcher.Subscribe(events.EventRestaurantSwitched, logEvent)
}
