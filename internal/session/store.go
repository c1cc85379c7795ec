package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/auth"
	"github.com/spec-kit/yummy-admin/internal/domain"
	"github.com/spec-kit/yummy-admin/internal/events"
	"github.com/spec-kit/yummy-admin/internal/upstream"
)

// Storage keys for the persisted session slice. The transient flags are
// never persisted.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// Snapshot is a point-in-time copy of the session state.
type Snapshot struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	Restoring    bool
	Redirecting  bool
}

// Roles returns the snapshot's normalized role set.
func (s Snapshot) Roles() []domain.Role {
	return s.User.NormalizedRoles()
}

// HasToken reports whether any credential is present.
func (s Snapshot) HasToken() bool {
	return s.AccessToken != "" || s.RefreshToken != ""
}

// Store is the single source of truth for who is logged in and which tokens
// authorize requests. State is replaced wholesale, never partially mutated;
// the persisted slice (user + tokens) survives restarts through Storage.
type Store struct {
	mu           sync.Mutex
	user         *domain.User
	accessToken  string
	refreshToken string
	restoring    bool
	redirecting  bool
	inFlight     bool
	seq          uint64

	storage    Storage
	authAPI    upstream.AuthAPI
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStore builds a session store over its collaborators.
func NewStore(storage Storage, authAPI upstream.AuthAPI, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		storage:    storage,
		authAPI:    authAPI,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:         s.user,
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
		Restoring:    s.restoring,
		Redirecting:  s.redirecting,
	}
}

// Set replaces the session wholesale after a successful login or refresh,
// clears the transient flags and persists the durable slice.
func (s *Store) Set(ctx context.Context, user *domain.User, accessToken, refreshToken string) {
	s.mu.Lock()
	s.seq++
	s.user = user
	s.accessToken = accessToken
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	s.restoring = false
	s.redirecting = false
	persistRefresh := s.refreshToken
	s.mu.Unlock()

	s.persist(ctx, user, accessToken, persistRefresh)
}

// Clear logs the session out: it sets the transient redirecting flag so the
// caller can render a transition state, erases persisted tokens and nulls
// the in-memory state. Navigation is the caller's responsibility.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	userID := ""
	if s.user != nil {
		userID = s.user.ID
	}
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
	s.restoring = false
	s.redirecting = true
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, keyAccessToken, keyRefreshToken, keyUser); err != nil {
		s.logger.Warn("failed to erase persisted session", zap.Error(err))
	}
	s.publish(ctx, events.EventSessionCleared, userID, nil)
}

// AckRedirect clears the transient redirecting flag once the caller has
// completed its post-logout navigation.
func (s *Store) AckRedirect() {
	s.mu.Lock()
	s.redirecting = false
	s.mu.Unlock()
}

// Restore reconstructs the session from persisted tokens. It is idempotent
// and guarded: a call while another restore is in flight returns
// immediately as a no-op. On full failure the existing credentials are
// deliberately kept so a transient upstream outage never flashes a
// logged-out state; only the transient flags are cleared.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.restoring = true
	startSeq := s.seq
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.restoring = false
		s.mu.Unlock()
	}()

	access, _, err := s.storage.Get(ctx, keyAccessToken)
	if err != nil {
		s.logger.Warn("session storage read failed", zap.Error(err))
	}
	refresh, _, err := s.storage.Get(ctx, keyRefreshToken)
	if err != nil {
		s.logger.Warn("session storage read failed", zap.Error(err))
	}

	if access == "" && refresh == "" {
		// anonymous, nothing to restore
		return nil
	}

	// A user already in memory means this is a re-validation, not a cold
	// start; drop the redirecting flag before the network round trip so the
	// caller doesn't keep showing a transition state.
	s.mu.Lock()
	if s.user != nil {
		s.redirecting = false
	}
	s.mu.Unlock()

	if refresh != "" {
		result, refreshErr := s.authAPI.RefreshSession(ctx, refresh)
		if refreshErr == nil {
			user := result.User
			if s.applyRestore(startSeq, &user, result.AccessToken, result.RefreshToken) {
				s.persist(ctx, &user, result.AccessToken, result.RefreshToken)
				s.publish(ctx, events.EventSessionRestored, user.ID,
					events.SessionRestoredPayload{Path: "refresh", Roles: len(user.NormalizedRoles())})
			}
			return nil
		}
		s.logger.Debug("refresh exchange failed", zap.Error(refreshErr))
	}

	if access != "" {
		// Unverified decode is only a hint for the who-am-I lookup id; the
		// fetched record, not the token payload, becomes the session user.
		if subject, decodeErr := auth.DecodeSubjectUnverified(access); decodeErr == nil {
			if user, lookupErr := s.authAPI.GetUserByID(ctx, subject); lookupErr == nil {
				if s.applyRestore(startSeq, user, access, refresh) {
					s.publish(ctx, events.EventSessionRestored, user.ID,
						events.SessionRestoredPayload{Path: "decode_lookup", Roles: len(user.NormalizedRoles())})
				}
				return nil
			}
		}
	}

	// Both paths failed. Keep whatever credentials exist; the next
	// authorized call will surface the auth failure.
	s.publish(ctx, events.EventSessionRestoreFailed, "", nil)
	return nil
}

// applyRestore installs a restore result unless a newer Set/Clear/Restore
// already advanced the sequence, in which case the stale result is dropped.
func (s *Store) applyRestore(startSeq uint64, user *domain.User, accessToken, refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != startSeq {
		return false
	}
	s.seq++
	s.user = user
	if accessToken != "" {
		s.accessToken = accessToken
	}
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	s.restoring = false
	s.redirecting = false
	return true
}

func (s *Store) persist(ctx context.Context, user *domain.User, accessToken, refreshToken string) {
	if accessToken != "" {
		if err := s.storage.Set(ctx, keyAccessToken, accessToken); err != nil {
			s.logger.Warn("failed to persist access token", zap.Error(err))
		}
	}
	if refreshToken != "" {
		if err := s.storage.Set(ctx, keyRefreshToken, refreshToken); err != nil {
			s.logger.Warn("failed to persist refresh token", zap.Error(err))
		}
	}
	if user != nil {
		raw, err := json.Marshal(user)
		if err == nil {
			err = s.storage.Set(ctx, keyUser, string(raw))
		}
		if err != nil {
			s.logger.Warn("failed to persist user snapshot", zap.Error(err))
		}
	}
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
