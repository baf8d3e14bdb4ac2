package auth

import (
	"context"
	"fmt"

	"storefront/internal/gateway"
	"storefront/internal/model"
	"storefront/internal/storage"
)

// SessionStoreInterface defines the operations on the persisted session.
type SessionStoreInterface interface {
	Token(ctx context.Context) (string, error)
	UserRole(ctx context.Context) (string, error)
	Profile(ctx context.Context) (model.Profile, error)
	Save(ctx context.Context, resp model.LoginResponse) error
	Clear(ctx context.Context) error
	CartID(ctx context.Context) (string, bool, error)
	SetCartID(ctx context.Context, cartID string) error
}

// SessionStore keeps the token and denormalized user profile in a durable
// key-value store. A fresh store is logged out; Clear returns it to that state.
type SessionStore struct {
	store storage.Store
}

// Ensure SessionStore implements SessionStoreInterface and can feed the gateway.
var (
	_ SessionStoreInterface = (*SessionStore)(nil)
	_ gateway.TokenSource   = (*SessionStore)(nil)
)

// NewSessionStore creates a new session store.
func NewSessionStore(store storage.Store) *SessionStore {
	return &SessionStore{store: store}
}

// Token returns the access token, or "" when there is none.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	return s.get(ctx, storage.KeyAccessToken)
}

// UserRole returns the persisted role, or "" when there is none.
func (s *SessionStore) UserRole(ctx context.Context) (string, error) {
	return s.get(ctx, storage.KeyUserRole)
}

// Profile reads every persisted session field.
func (s *SessionStore) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	fields := []struct {
		key string
		dst *string
	}{
		{storage.KeyAccessToken, &p.Token},
		{storage.KeyUserRole, &p.Role},
		{storage.KeyUserName, &p.Name},
		{storage.KeyUserEmail, &p.Email},
		{storage.KeyUserID, &p.ID},
		{storage.KeyUserImage, &p.ImagePath},
	}
	for _, f := range fields {
		v, err := s.get(ctx, f.key)
		if err != nil {
			return model.Profile{}, err
		}
		*f.dst = v
	}
	return p, nil
}

// Save persists the token and user fields of a login response. Missing
// optional fields are stored as empty strings.
func (s *SessionStore) Save(ctx context.Context, resp model.LoginResponse) error {
	user := model.User{}
	if resp.User != nil {
		user = *resp.User
	}
	values := []struct {
		key   string
		value string
	}{
		{storage.KeyAccessToken, resp.Token},
		{storage.KeyUserRole, user.Role},
		{storage.KeyUserName, user.Name},
		{storage.KeyUserEmail, user.Email},
		{storage.KeyUserID, user.ID.String()},
		{storage.KeyUserImage, user.ImagePath},
	}
	for _, v := range values {
		if err := s.store.Set(ctx, v.key, v.value); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}

// Clear removes every session key. Clearing an empty session is a no-op.
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CartID returns the cached server cart id.
func (s *SessionStore) CartID(ctx context.Context) (string, bool, error) {
	v, ok, err := s.store.Get(ctx, storage.KeyCartID)
	if err != nil {
		return "", false, fmt.Errorf("read cart id: %w", err)
	}
	return v, ok && v != "", nil
}

// SetCartID caches the server cart id.
func (s *SessionStore) SetCartID(ctx context.Context, cartID string) error {
	if err := s.store.Set(ctx, storage.KeyCartID, cartID); err != nil {
		return fmt.Errorf("save cart id: %w", err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, key string) (string, error) {
	v, _, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}
