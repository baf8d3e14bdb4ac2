package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
	"storefront/internal/storage"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewSessionStore(mem)

	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	err = s.Save(ctx, model.LoginResponse{
		Token: "tok",
		User:  &model.User{ID: "9", Role: "customer", Email: "ana@example.com"},
	})
	require.NoError(t, err)

	profile, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Profile{Token: "tok", Role: "customer", Email: "ana@example.com", ID: "9"}, profile)
	assert.True(t, profile.LoggedIn())

	role, err := s.UserRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, "customer", role)

	// optional fields are persisted as empty strings, not left absent
	v, ok, err := mem.Get(ctx, storage.KeyUserName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, s.SetCartID(ctx, "c1"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	profile, err = s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Profile{}, profile)

	cartID, ok, err := s.CartID(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "c1", cartID)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(model.User{ID: "231", Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "231", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(AccessTokenExpiry), claims.ExpiresAt.Time, time.Minute)

	_, err = NewJWTService("other-secret").ValidateToken(token)
	assert.Error(t, err)
}

func TestInspectToken(t *testing.T) {
	token, err := NewJWTService("server-only").GenerateAccessToken(model.User{ID: "5", Email: "bo@example.com"})
	require.NoError(t, err)

	claims, err := InspectToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bo@example.com", claims.Email)
	assert.Equal(t, "5", claims.Subject)

	_, err = InspectToken("not-a-jwt")
	assert.Error(t, err)
}
