package credentials

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Storage keys.
const (
	KeyBearerToken = "app_bearer_token"
	KeyAdminAPIKey = "app_admin_api_key"
)

// Storage is a string key-value store.
type Storage interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store holds the client credentials.
type Store struct {
	storage Storage
	logger  logrus.FieldLogger

	mu       sync.RWMutex
	token    string
	adminKey string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a Store backed by storage and loads the persisted values.
// A nil storage means a fresh MemoryStorage.
func New(ctx context.Context, storage Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{
		storage: storage,
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, _, err := storage.Get(ctx, KeyBearerToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load bearer token: %w", err)
	}
	adminKey, _, err := storage.Get(ctx, KeyAdminAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin API key: %w", err)
	}
	s.token = token
	s.adminKey = adminKey
	return s, nil
}

// BearerToken returns the current bearer token, or "" if none is set.
func (s *Store) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// AdminAPIKey returns the current admin API key, or "" if none is set.
func (s *Store) AdminAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminKey
}

// SetBearerToken replaces the bearer token. An empty token removes it.
// The in-memory value changes even if persisting it fails.
func (s *Store) SetBearerToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return s.persist(ctx, KeyBearerToken, token)
}

// SetAdminAPIKey replaces the admin API key. An empty key removes it.
func (s *Store) SetAdminAPIKey(ctx context.Context, key string) error {
	s.mu.Lock()
	s.adminKey = key
	s.mu.Unlock()
	return s.persist(ctx, KeyAdminAPIKey, key)
}

// ClearAll removes both credentials.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.adminKey = ""
	s.mu.Unlock()

	return errors.Join(
		s.persist(ctx, KeyBearerToken, ""),
		s.persist(ctx, KeyAdminAPIKey, ""),
	)
}

func (s *Store) persist(ctx context.Context, key, value string) error {
	var err error
	if value == "" {
		err = s.storage.Delete(ctx, key)
	} else {
		err = s.storage.Set(ctx, key, value)
	}
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Error("failed to persist credential")
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
