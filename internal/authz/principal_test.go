package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/authz"
)

func principalCtx(values map[string]any) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	for k, v := range values {
		c.Set(k, v)
	}
	return c
}

func TestPrincipalFrom(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		wantID uint64
		ok     bool
	}{
		{"no session", nil, 0, false},
		{"native uint64", map[string]any{"user_id": uint64(7), "email": "a@x.com"}, 7, true},
		{"jwt float64 claim", map[string]any{"user_id": float64(7)}, 7, true},
		{"string id", map[string]any{"user_id": "7"}, 7, true},
		{"garbage string id", map[string]any{"user_id": "seven"}, 0, false},
		{"zero id", map[string]any{"user_id": uint64(0)}, 0, false},
		{"unsupported type", map[string]any{"user_id": []byte("7")}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := authz.PrincipalFrom(principalCtx(tt.values))
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			assert.Equal(t, tt.wantID, p.ID)
		})
	}
}

func TestPrincipalFromCarriesEmail(t *testing.T) {
	p, ok := authz.PrincipalFrom(principalCtx(map[string]any{"user_id": uint64(3), "email": "who@x.com"}))
	require.True(t, ok)
	assert.Equal(t, "who@x.com", p.Email)
}
