package orders

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/yummy-admin/internal/domain"
	"github.com/spec-kit/yummy-admin/internal/events"
	"github.com/spec-kit/yummy-admin/internal/upstream"
	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

// Aggregator assembles the complete order view. It prefers the backend's
// consolidated endpoint and falls back to independent calls when that
// fails, tolerating partial failures in the non-critical sub-fetches.
type Aggregator struct {
	orders     upstream.OrderAPI
	kots       upstream.KOTAPI
	dispatcher events.Dispatcher
	logger     *zap.Logger
	seq        atomic.Uint64
}

// NewAggregator builds an aggregator over the order and KOT collaborators.
func NewAggregator(orders upstream.OrderAPI, kots upstream.KOTAPI, dispatcher events.Dispatcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		orders:     orders,
		kots:       kots,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// FetchContext loads the full context for orderID. The consolidated result
// is used verbatim when available; otherwise the context is reconstructed
// from three independent fetches, of which only the order itself is
// mandatory.
func (a *Aggregator) FetchContext(ctx context.Context, orderID int64) (*domain.OrderFullContext, error) {
	full, err := a.orders.GetOrderFull(ctx, orderID)
	if err == nil {
		return full, nil
	}
	a.logger.Debug("consolidated order fetch failed, using fallback",
		zap.Int64("order_id", orderID), zap.Error(err))
	return a.fetchFallback(ctx, orderID)
}

func (a *Aggregator) fetchFallback(ctx context.Context, orderID int64) (*domain.OrderFullContext, error) {
	var (
		order      *domain.Order
		kotUpdates []domain.KOTUpdate
		orderLog   []domain.OrderEvent
		kotErr     error
		eventsErr  error
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		o, err := a.orders.GetOrder(gctx, orderID)
		if err != nil {
			return err
		}
		order = o
		return nil
	})
	group.Go(func() error {
		// optional: a failure degrades to an empty slice
		k, err := a.kots.GetKotUpdatesByOrder(gctx, orderID)
		if err != nil {
			kotErr = err
			return nil
		}
		kotUpdates = k
		return nil
	})
	group.Go(func() error {
		e, err := a.orders.GetOrderEvents(gctx, orderID)
		if err != nil {
			eventsErr = err
			return nil
		}
		orderLog = e
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, apperrors.NewOrderContextUnavailable(orderID, err)
	}

	if kotUpdates == nil {
		kotUpdates = []domain.KOTUpdate{}
	}
	if orderLog == nil {
		orderLog = []domain.OrderEvent{}
	}

	full := &domain.OrderFullContext{
		Order:    *order,
		Tables:   synthesizeTables(order),
		KOTs:     kotUpdates,
		Payments: []domain.Payment{},
		Events:   orderLog,
	}

	a.publishDegraded(ctx, orderID, kotErr, eventsErr)
	return full, nil
}

// synthesizeTables reconstructs a table reference from fields embedded in
// the order payload. Best effort, not a verified table record.
func synthesizeTables(order *domain.Order) []domain.TableSummary {
	if order.TableID == 0 && order.TableName == "" {
		return []domain.TableSummary{}
	}
	return []domain.TableSummary{{ID: order.TableID, Name: order.TableName}}
}

func (a *Aggregator) publishDegraded(ctx context.Context, orderID int64, kotErr, eventsErr error) {
	if a.dispatcher == nil || (kotErr == nil && eventsErr == nil) {
		return
	}
	missing := make([]string, 0, 2)
	if kotErr != nil {
		a.logger.Warn("kot fetch degraded", zap.Int64("order_id", orderID), zap.Error(kotErr))
		missing = append(missing, "kots")
	}
	if eventsErr != nil {
		a.logger.Warn("order events fetch degraded", zap.Int64("order_id", orderID), zap.Error(eventsErr))
		missing = append(missing, "events")
	}
	_ = a.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderContextDegraded,
		Timestamp: time.Now(),
		Payload:   events.OrderContextDegradedPayload{OrderID: orderID, Missing: missing},
	})
}

// FetchLatest runs FetchContext and hands the result to apply only if no
// newer fetch has started since, making last-call-wins deterministic when
// calls race.
func (a *Aggregator) FetchLatest(ctx context.Context, orderID int64, apply func(*domain.OrderFullContext)) error {
	token := a.seq.Add(1)
	full, err := a.FetchContext(ctx, orderID)
	if err != nil {
		return err
	}
	if a.seq.Load() == token {
		apply(full)
	}
	return nil
}
