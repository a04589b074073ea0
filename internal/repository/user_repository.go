package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/utils"
)

// ErrEmailExists is returned when registration hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// UserRepo persists users and their 1:1 profiles.  Both rows are written in
// one transaction at sign-up so a user can never exist without a role.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user plus its profile (role customer) and returns the new
// user id.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName, phone string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		// MySQL 1062 = duplicate entry on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO profiles (user_id, full_name, phone, role) VALUES (?,?,?,?)",
		uint64(id), strings.TrimSpace(fullName), strings.TrimSpace(phone), model.RoleCustomer); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetProfile fetches the profile row for a user.  It satisfies
// authz.ProfileStore, which is how the gate reads roles.
func (r *UserRepo) GetProfile(ctx context.Context, userID uint64) (model.Profile, error) {
	var p model.Profile
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id,full_name,phone,role,created_at,updated_at FROM profiles WHERE user_id=? LIMIT 1",
		userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// UpdateProfile lets a user change their own name and phone.  Role is
// deliberately not updatable here.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID uint64, fullName, phone string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE profiles SET full_name=?, phone=? WHERE user_id=?",
		strings.TrimSpace(fullName), strings.TrimSpace(phone), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		ok, err := rowExists(ctx, r.DB, "SELECT 1 FROM profiles WHERE user_id=?", userID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
	}
	return nil
}

// PromoteAdminsByEmail sets role=admin on the profiles of every user whose
// email appears in the allowlist.  It is invoked exactly once at process
// start; replaying it converges to the same state.  Returns the number of
// rows changed.
func (r *UserRepo) PromoteAdminsByEmail(ctx context.Context, emails []string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(emails)+1)
	args = append(args, model.RoleAdmin)
	placeholders := make([]string, 0, len(emails))
	for _, e := range emails {
		placeholders = append(placeholders, "?")
		args = append(args, strings.ToLower(strings.TrimSpace(e)))
	}
	q := "UPDATE profiles p JOIN users u ON u.id = p.user_id SET p.role=? WHERE u.email IN (" +
		strings.Join(placeholders, ",") + ")"
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
