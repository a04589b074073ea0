package authz_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
)

// stubProfiles is an in-memory ProfileStore that counts lookups so tests can
// assert the gate short-circuits before touching storage.
type stubProfiles struct {
	profiles map[uint64]model.Profile
	lookups  int
}

func (s *stubProfiles) GetProfile(_ context.Context, userID uint64) (model.Profile, error) {
	s.lookups++
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func newStubProfiles() *stubProfiles {
	return &stubProfiles{profiles: map[uint64]model.Profile{
		1: {UserID: 1, Role: model.RoleAdmin},
		2: {UserID: 2, Role: model.RoleCustomer},
	}}
}

const denyMsg = "Only admins can update settings."

func TestRequireAdminMatrix(t *testing.T) {
	tests := []struct {
		name      string
		principal *authz.Principal
		allowed   bool
		message   string
	}{
		{"absent principal denied", nil, false, authz.MsgLoginRequired},
		{"customer denied", &authz.Principal{ID: 2}, false, denyMsg},
		{"admin permitted", &authz.Principal{ID: 1}, true, ""},
		{"unknown principal denied", &authz.Principal{ID: 99}, false, denyMsg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := authz.NewGate(newStubProfiles())
			d := gate.RequireAdmin(context.Background(), tt.principal, denyMsg)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.message, d.Message)
		})
	}
}

func TestRequireAdminSkipsLookupWithoutSession(t *testing.T) {
	profiles := newStubProfiles()
	gate := authz.NewGate(profiles)

	d := gate.RequireAdmin(context.Background(), nil, denyMsg)
	require.False(t, d.Allowed)
	assert.Zero(t, profiles.lookups, "no session must mean no storage access")
}

func TestRequireAdminDoesNotLeakWhichCheckFailed(t *testing.T) {
	gate := authz.NewGate(newStubProfiles())

	wrongRole := gate.RequireAdmin(context.Background(), &authz.Principal{ID: 2}, denyMsg)
	noProfile := gate.RequireAdmin(context.Background(), &authz.Principal{ID: 99}, denyMsg)
	assert.Equal(t, wrongRole.Message, noProfile.Message,
		"a missing profile and a wrong role must be indistinguishable")
}

func TestRequireOwner(t *testing.T) {
	gate := authz.NewGate(newStubProfiles())

	d := gate.RequireOwner(nil, 7, "order not found")
	assert.False(t, d.Allowed)
	assert.Equal(t, authz.MsgLoginRequired, d.Message)

	d = gate.RequireOwner(&authz.Principal{ID: 2}, 7, "order not found")
	assert.False(t, d.Allowed)
	assert.Equal(t, "order not found", d.Message)

	d = gate.RequireOwner(&authz.Principal{ID: 7}, 7, "order not found")
	assert.True(t, d.Allowed)
	assert.Empty(t, d.Message)
}
