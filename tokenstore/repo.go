package tokenstore

import "context"

// Keys under which the persisted session fields are stored. The five fields
// are always written and cleared together as a set.
const (
	KeyAccessToken        = "access_token"
	KeyRefreshToken       = "refresh_token"
	KeyAccessTokenExpiry  = "access_token_expiry"
	KeyRefreshTokenExpiry = "refresh_token_expiry"
	KeyTokenSetTime       = "token_set_time"
)

// SessionKeys lists every persisted session field.
var SessionKeys = []string{
	KeyAccessToken,
	KeyRefreshToken,
	KeyAccessTokenExpiry,
	KeyRefreshTokenExpiry,
	KeyTokenSetTime,
}

// Repo is the key/value storage backing a Store. Implementations must apply
// SetAll and DeleteAll as a group so a session is never left partially
// populated.
type Repo interface {
	// Get returns the stored value, or an empty string when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// SetAll writes all entries as a group.
	SetAll(ctx context.Context, entries map[string]string) error

	// DeleteAll removes all given keys as a group. Missing keys are not an
	// error.
	DeleteAll(ctx context.Context, keys ...string) error
}
