package orders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/domain"
	apperrors "github.com/spec-kit/yummy-admin/pkg/util"
)

type fakeOrderAPI struct {
	mu        sync.Mutex
	full      *domain.OrderFullContext
	fullErr   error
	fullGate  chan struct{} // when set, GetOrderFull blocks until closed
	order     *domain.Order
	orderErr  error
	events    []domain.OrderEvent
	eventsErr error
	fullCalls int
}

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

func (f *fakeOrderAPI) GetOrderFull(_ context.Context, _ int64) (*domain.OrderFullContext, error) {
	f.mu.Lock()
	f.fullCalls++
	gate := f.fullGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fullErr != nil {
		return nil, f.fullErr
	}
	return f.full, nil
}

func (f *fakeOrderAPI) GetOrder(_ context.Context, _ int64) (*domain.Order, error) {
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.order, nil
}

func (f *fakeOrderAPI) GetOrderEvents(_ context.Context, _ int64) ([]domain.OrderEvent, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

type fakeKOTAPI struct {
	kots []domain.KOTUpdate
	err  error
}

func (f *fakeKOTAPI) GetKotUpdatesByOrder(_ context.Context, _ int64) ([]domain.KOTUpdate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.kots, nil
}

func TestFetchContext_ConsolidatedPath(t *testing.T) {
	full := &domain.OrderFullContext{
		Order:    domain.Order{ID: 9, GrandTotal: 500},
		Tables:   []domain.TableSummary{{ID: 3, Name: "T3"}},
		KOTs:     []domain.KOTUpdate{{ID: 1, OrderID: 9, Status: domain.KOTStatusServed}},
		Payments: []domain.Payment{{ID: 1, OrderID: 9, Amount: 500}},
	}
	agg := NewAggregator(&fakeOrderAPI{full: full}, &fakeKOTAPI{}, nil, zap.NewNop())

	got, err := agg.FetchContext(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, full, got, "consolidated payload is used verbatim")
	assert.True(t, got.IsFullyPaid())
}

func TestFetchContext_FallbackToleratesOptionalFailures(t *testing.T) {
	orderAPI := &fakeOrderAPI{
		fullErr: errors.New("route missing"),
		order:   &domain.Order{ID: 9, TableID: 4, TableName: "Patio 4", GrandTotal: 120},
		events:  []domain.OrderEvent{{ID: 1, OrderID: 9, Kind: "created"}},
	}
	kotAPI := &fakeKOTAPI{err: errors.New("kot service down")}
	agg := NewAggregator(orderAPI, kotAPI, nil, zap.NewNop())

	got, err := agg.FetchContext(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Order.ID)
	assert.Empty(t, got.KOTs, "failed KOT fetch degrades to empty")
	assert.True(t, got.AllKotsServed(), "vacuously true with no KOTs")
	assert.Len(t, got.Events, 1)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, "Patio 4", got.Tables[0].Name, "table synthesized from the order payload")
	assert.False(t, got.IsFullyPaid(), "fallback path carries no payments")
}

func TestFetchContext_MandatoryFailurePropagates(t *testing.T) {
	orderAPI := &fakeOrderAPI{
		fullErr:  errors.New("route missing"),
		orderErr: errors.New("order service down"),
	}
	agg := NewAggregator(orderAPI, &fakeKOTAPI{}, nil, zap.NewNop())

	_, err := agg.FetchContext(context.Background(), 9)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ORDER_CONTEXT_UNAVAILABLE", domainErr.Code)
}

func TestFetchLatest_StaleResultDiscarded(t *testing.T) {
	gate := make(chan struct{})
	slow := &domain.OrderFullContext{Order: domain.Order{ID: 1, Status: "stale"}}
	orderAPI := &fakeOrderAPI{full: slow, fullGate: gate}
	agg := NewAggregator(orderAPI, &fakeKOTAPI{}, nil, zap.NewNop())

	var mu sync.Mutex
	var applied []string

	done := make(chan error, 1)
	go func() {
		done <- agg.FetchLatest(context.Background(), 1, func(full *domain.OrderFullContext) {
			mu.Lock()
			applied = append(applied, full.Order.Status)
			mu.Unlock()
		})
	}()

	// wait for the slow fetch to be in flight, then race a fresh one
	require.Eventually(t, func() bool {
		orderAPI.mu.Lock()
		defer orderAPI.mu.Unlock()
		return orderAPI.fullCalls == 1
	}, testWait, testTick)

	orderAPI.mu.Lock()
	orderAPI.fullGate = nil
	orderAPI.full = &domain.OrderFullContext{Order: domain.Order{ID: 1, Status: "fresh"}}
	orderAPI.mu.Unlock()

	require.NoError(t, agg.FetchLatest(context.Background(), 1, func(full *domain.OrderFullContext) {
		mu.Lock()
		applied = append(applied, full.Order.Status)
		mu.Unlock()
	}))

	close(gate)
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"fresh"}, applied, "only the newest fetch may publish its result")
}
