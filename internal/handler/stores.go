package handler

import (
	"context"
	"time"

	"github.com/floramart/storefront/internal/model"
)

// Store interfaces consumed by handlers that need to be exercised against
// stubs (auth flows and the settings executor).  The repository types
// satisfy them; tests substitute in-memory fakes so denial paths can assert
// that no write ever reached storage.

// UserStore is the user/profile persistence the auth handler depends on.
type UserStore interface {
	Create(ctx context.Context, email, password, fullName, phone string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetProfile(ctx context.Context, userID uint64) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uint64, fullName, phone string) error
}

// TokenStore persists refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// SettingStore persists site settings keyed by natural string keys.
type SettingStore interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (model.Setting, error)
	List(ctx context.Context) ([]model.Setting, error)
	Delete(ctx context.Context, key string) error
}
