package restaurant

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/yummy-admin/internal/domain"
	"github.com/spec-kit/yummy-admin/internal/events"
	"github.com/spec-kit/yummy-admin/internal/session"
	"github.com/spec-kit/yummy-admin/internal/upstream"
)

const keyProfile = "restaurant_profile"

// Store holds the active restaurant profile. It is independent of the
// session store: after an explicit switch the profile may belong to a
// different restaurant than the user's home one.
type Store struct {
	mu      sync.Mutex
	profile *domain.RestaurantProfile

	storage    session.Storage
	api        upstream.RestaurantAPI
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStore builds a restaurant store.
func NewStore(storage session.Storage, api upstream.RestaurantAPI, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		storage:    storage,
		api:        api,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Current returns the active profile, or nil when none is loaded.
func (s *Store) Current() *domain.RestaurantProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Set replaces the profile wholesale and persists it.
func (s *Store) Set(ctx context.Context, profile *domain.RestaurantProfile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()

	raw, err := json.Marshal(profile)
	if err == nil {
		err = s.storage.Set(ctx, keyProfile, string(raw))
	}
	if err != nil {
		s.logger.Warn("failed to persist restaurant profile", zap.Error(err))
	}
}

// Load hydrates the profile from durable storage, or when absent there,
// fetches it from the backend by id and persists the result.
func (s *Store) Load(ctx context.Context, id int64) (*domain.RestaurantProfile, error) {
	if raw, ok, err := s.storage.Get(ctx, keyProfile); err == nil && ok {
		var profile domain.RestaurantProfile
		if json.Unmarshal([]byte(raw), &profile) == nil && profile.ID == id {
			s.mu.Lock()
			s.profile = &profile
			s.mu.Unlock()
			return &profile, nil
		}
	}
	return s.Switch(ctx, id)
}

// Switch fetches the profile for id from the backend and makes it active.
func (s *Store) Switch(ctx context.Context, id int64) (*domain.RestaurantProfile, error) {
	profile, err := s.api.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Set(ctx, profile)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventRestaurantSwitched,
			Timestamp: time.Now(),
			Payload:   events.RestaurantSwitchedPayload{RestaurantID: id},
		})
	}
	return profile, nil
}
