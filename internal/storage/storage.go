package storage

import "context"

// Keys the client persists. Values are always strings.
const (
	KeyAccessToken = "access_token"
	KeyUserRole    = "user_role"
	KeyUserName    = "user_name"
	KeyUserEmail   = "user_email"
	KeyUserID      = "user_id"
	KeyUserImage   = "user_image"
	KeyCartID      = "cart_id"
	KeyCartItems   = "cart_items_cache"
)

// SessionKeys are removed together on logout.
var SessionKeys = []string{
	KeyAccessToken,
	KeyUserRole,
	KeyUserName,
	KeyUserEmail,
	KeyUserID,
	KeyUserImage,
}

// Store is a durable string key-value store. Get reports ok=false for an
// absent key; Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
