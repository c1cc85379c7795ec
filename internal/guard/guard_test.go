package guard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/domain"
	"github.com/spec-kit/yummy-admin/internal/session"
	"github.com/spec-kit/yummy-admin/internal/upstream"
)

func snapshotFor(user *domain.User, access string) session.Snapshot {
	return session.Snapshot{User: user, AccessToken: access}
}

func TestEvaluate_Anonymous(t *testing.T) {
	decision := Evaluate("/dashboard", session.Snapshot{})
	assert.Equal(t, StateDenied, decision.State)
	assert.Equal(t, ReasonAnonymous, decision.Reason)
	assert.Equal(t, "/", decision.Redirect)
	assert.Zero(t, decision.RetryAfter, "anonymous redirect is immediate")
}

func TestEvaluate_LoadingWhileRestoreInFlight(t *testing.T) {
	decision := Evaluate("/dashboard", snapshotFor(nil, "some-token"))
	assert.Equal(t, StateLoading, decision.State)
}

func TestEvaluate_InvalidSessionRoles(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: []string{"ghost", "intern"}}
	decision := Evaluate("/dashboard", snapshotFor(user, "token"))
	assert.Equal(t, StateDenied, decision.State)
	assert.Equal(t, ReasonInvalidSession, decision.Reason)
	assert.Equal(t, "/", decision.Redirect)
}

func TestEvaluate_Allowed(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: []string{"waiter"}}
	decision := Evaluate("/orders/active", snapshotFor(user, "token"))
	assert.Equal(t, StateAllowed, decision.State)
	assert.Empty(t, decision.Redirect)
}

func TestEvaluate_DeniedRedirectsHome(t *testing.T) {
	user := &domain.User{ID: "u1", Roles: []string{"cashier"}}
	decision := Evaluate("/manage", snapshotFor(user, "token"))
	require.Equal(t, StateDenied, decision.State)
	assert.Equal(t, ReasonForbidden, decision.Reason)
	assert.Equal(t, "/dashboard", decision.Redirect)
	assert.Equal(t, DeniedRedirectDelay, decision.RetryAfter)

	// a path change re-evaluates from scratch, denial is not sticky
	next := Evaluate("/orders/active", snapshotFor(user, "token"))
	assert.Equal(t, StateAllowed, next.State)
}

func TestRedirectTimer_Fires(t *testing.T) {
	fired := make(chan string, 1)
	StartRedirect(10*time.Millisecond, "/dashboard", func(target string) {
		fired <- target
	})

	select {
	case target := <-fired:
		assert.Equal(t, "/dashboard", target)
	case <-time.After(time.Second):
		t.Fatal("redirect never fired")
	}
}

func TestRedirectTimer_CancelPreventsFire(t *testing.T) {
	var fired atomic.Bool
	rt := StartRedirect(30*time.Millisecond, "/dashboard", func(string) {
		fired.Store(true)
	})
	rt.Cancel()

	time.Sleep(80 * time.Millisecond)
	assert.False(t, fired.Load(), "cancelled redirect must not fire")

	// cancel is idempotent
	rt.Cancel()
}

func TestGuard_CheckTriggersRestore(t *testing.T) {
	storage := session.NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, "refresh_token", "stored-refresh"))

	api := &stubAuthAPI{result: &upstream.RefreshResult{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         domain.User{ID: "u1", Roles: []string{"manager"}},
	}}
	store := session.NewStore(storage, api, nil, zap.NewNop())
	g := New(store)

	decision := g.Check(ctx, "/menu")
	assert.Equal(t, StateAllowed, decision.State)
	assert.Equal(t, int32(1), api.refreshCalls.Load())
}

type stubAuthAPI struct {
	refreshCalls atomic.Int32
	result       *upstream.RefreshResult
}

func (s *stubAuthAPI) RefreshSession(context.Context, string) (*upstream.RefreshResult, error) {
	s.refreshCalls.Add(1)
	return s.result, nil
}

func (s *stubAuthAPI) GetUserByID(context.Context, string) (*domain.User, error) {
	return nil, assert.AnError
}
