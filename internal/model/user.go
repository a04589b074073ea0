package model

import "time"

// Role values stored in the profiles.role column.  The role drives every
// authorization decision in the application; it is assigned at sign-up
// (always RoleCustomer) and only changed by the startup admin promotion.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User mirrors the 'users' table.  It carries credentials only; everything
// the storefront knows about a person beyond email/password lives in the
// 1:1 Profile row.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email (unique, lowercased)
	PasswordHash string    // users.password_hash (bcrypt)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// Profile mirrors the 'profiles' table.  One row per user, created in the
// same transaction as the user itself.
type Profile struct {
	UserID    uint64    // profiles.user_id (PK, FK users.id)
	FullName  string    // profiles.full_name
	Phone     string    // profiles.phone
	Role      string    // profiles.role (customer | admin)
	CreatedAt time.Time // profiles.created_at
	UpdatedAt time.Time // profiles.updated_at
}

// RefreshToken mirrors the 'refresh_tokens' table.  Only the SHA-256 hash of
// the token is stored; the raw value is returned to the client once.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
