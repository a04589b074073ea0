package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/floramart/storefront/internal/model"
)

// SettingRepo persists site settings keyed by a natural string key.
type SettingRepo struct{ db *sql.DB }

func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{db: db} }

// Upsert writes a setting value, creating the row on first use.  Keyed on
// the primary key setting_key, so replaying the same payload converges to
// one row with that value.
func (r *SettingRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO site_settings (setting_key, setting_value) VALUES (?,?) ON DUPLICATE KEY UPDATE setting_value=VALUES(setting_value)",
		key, value)
	return err
}

// Get fetches one setting or ErrNotFound.  A missing key is a distinguished
// state here; callers that want to treat it as "unconfigured" do so
// explicitly.
func (r *SettingRepo) Get(ctx context.Context, key string) (model.Setting, error) {
	var s model.Setting
	err := r.db.QueryRowContext(ctx,
		"SELECT setting_key, setting_value, updated_at FROM site_settings WHERE setting_key=? LIMIT 1",
		key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Setting{}, ErrNotFound
	}
	return s, err
}

// List returns every setting ordered by key.
func (r *SettingRepo) List(ctx context.Context) ([]model.Setting, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT setting_key, setting_value, updated_at FROM site_settings ORDER BY setting_key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Setting
	for rows.Next() {
		var s model.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a setting.
func (r *SettingRepo) Delete(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM site_settings WHERE setting_key=?", key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
