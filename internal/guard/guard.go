package guard

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/yummy-admin/internal/auth"
	"github.com/spec-kit/yummy-admin/internal/session"
)

// State is the guard's evaluation outcome for one path + session pair.
type State string

const (
	StateLoading State = "loading"
	StateAllowed State = "allowed"
	StateDenied  State = "denied"
)

// Reason qualifies a denial.
type Reason string

const (
	ReasonNone           Reason = ""
	ReasonAnonymous      Reason = "anonymous"
	ReasonInvalidSession Reason = "invalid_session"
	ReasonForbidden      Reason = "forbidden"
)

// DeniedRedirectDelay is the grace period before a forbidden caller is
// redirected to their home route, long enough to read the denial message.
const DeniedRedirectDelay = 2 * time.Second

// Decision is the guard's verdict. Redirect is empty when no navigation
// should happen; RetryAfter is non-zero only for forbidden denials, where
// the redirect is delayed rather than immediate.
type Decision struct {
	State      State
	Reason     Reason
	Redirect   string
	RetryAfter time.Duration
}

// Evaluate computes the guard decision for a navigation target. It is pure:
// any path or session change simply re-evaluates from scratch, so there is
// no sticky denied state.
func Evaluate(path string, snap session.Snapshot) Decision {
	if !snap.HasToken() {
		return Decision{State: StateDenied, Reason: ReasonAnonymous, Redirect: auth.RouteRoot}
	}
	if snap.User == nil {
		// token present, user not yet loaded
		return Decision{State: StateLoading}
	}
	roles := snap.Roles()
	if len(roles) == 0 {
		return Decision{State: StateDenied, Reason: ReasonInvalidSession, Redirect: auth.RouteRoot}
	}
	if auth.IsRouteAllowedAny(path, roles) {
		return Decision{State: StateAllowed}
	}
	return Decision{
		State:      StateDenied,
		Reason:     ReasonForbidden,
		Redirect:   auth.HomeRoute(roles),
		RetryAfter: DeniedRedirectDelay,
	}
}

// Guard evaluates navigation against the live session store, triggering a
// session restore when the store has credentials but no user yet.
type Guard struct {
	sessions *session.Store
}

// New builds a guard over the session store.
func New(sessions *session.Store) *Guard {
	return &Guard{sessions: sessions}
}

// Check ensures the session store is populated, then evaluates path.
func (g *Guard) Check(ctx context.Context, path string) Decision {
	snap := g.sessions.Snapshot()
	if snap.User == nil && !snap.Restoring {
		_ = g.sessions.Restore(ctx)
		snap = g.sessions.Snapshot()
	}
	return Evaluate(path, snap)
}

// RedirectTimer fires a redirect callback after a denial's grace period.
// Cancelling before expiry guarantees the callback never runs, so a rapid
// re-navigation cannot race an in-flight denial redirect.
type RedirectTimer struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// StartRedirect schedules fn(target) after delay. A zero delay fires fn
// synchronously and returns nil.
func StartRedirect(delay time.Duration, target string, fn func(string)) *RedirectTimer {
	if delay <= 0 {
		fn(target)
		return nil
	}
	rt := &RedirectTimer{}
	rt.timer = time.AfterFunc(delay, func() {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		if rt.cancelled {
			return
		}
		fn(target)
	})
	return rt
}

// Cancel stops the pending redirect. Safe to call multiple times.
func (rt *RedirectTimer) Cancel() {
	if rt == nil {
		return
	}
	rt.mu.Lock()
	rt.cancelled = true
	rt.mu.Unlock()
	rt.timer.Stop()
}
