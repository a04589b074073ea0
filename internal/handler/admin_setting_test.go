package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
)

type stubSettings struct {
	values map[string]string
	writes int
}

func newStubSettings() *stubSettings { return &stubSettings{values: make(map[string]string)} }

func (s *stubSettings) Upsert(_ context.Context, key, value string) error {
	s.values[key] = value
	s.writes++
	return nil
}

func (s *stubSettings) Get(_ context.Context, key string) (model.Setting, error) {
	v, ok := s.values[key]
	if !ok {
		return model.Setting{}, repository.ErrNotFound
	}
	return model.Setting{Key: key, Value: v}, nil
}

func (s *stubSettings) List(_ context.Context) ([]model.Setting, error) {
	out := make([]model.Setting, 0, len(s.values))
	for k, v := range s.values {
		out = append(out, model.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (s *stubSettings) Delete(_ context.Context, key string) error {
	if _, ok := s.values[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.values, key)
	return nil
}

// settingEnv wires an AdminHandler whose gate reads roles from the given
// users stub and whose settings live in memory.
func settingEnv(users *stubUsers) (*handler.AdminHandler, *stubSettings) {
	settings := newStubSettings()
	h := &handler.AdminHandler{
		Gate:     authz.NewGate(users),
		Settings: settings,
	}
	return h, settings
}

// upsertCtx builds a PUT /v1/admin/settings/:key request.  userID 0 leaves
// the request anonymous, as if the JWT middleware never ran.
func upsertCtx(userID uint64, key, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/settings/"+key, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("key")
	c.SetParamValues(key)
	if userID != 0 {
		c.Set("user_id", userID)
		c.Set("email", "someone@x.com")
	}
	return c, rec
}

func TestUpsertSettingDeniedForCustomer(t *testing.T) {
	users := newStubUsers()
	customerID := users.seed(t, "cust@x.com", "validpass", model.RoleCustomer)
	h, settings := settingEnv(users)
	settings.values[model.SettingUPIID] = "old@bank"
	settings.writes = 0

	c, rec := upsertCtx(customerID, model.SettingUPIID, `{"value":"evil@bank"}`)
	require.NoError(t, h.UpsertSetting(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	b := decodeAuth(t, rec)
	assert.False(t, b.Success)
	assert.Equal(t, handler.DenySettings, b.Error)
	assert.Zero(t, settings.writes, "denied request must not reach storage")
	assert.Equal(t, "old@bank", settings.values[model.SettingUPIID], "stored value must be untouched")
}

func TestUpsertSettingRequiresSession(t *testing.T) {
	h, settings := settingEnv(newStubUsers())

	c, rec := upsertCtx(0, model.SettingUPIID, `{"value":"x@bank"}`)
	require.NoError(t, h.UpsertSetting(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, authz.MsgLoginRequired, decodeAuth(t, rec).Error)
	assert.Zero(t, settings.writes)
}

func TestUpsertSettingAsAdmin(t *testing.T) {
	users := newStubUsers()
	adminID := users.seed(t, "boss@x.com", "validpass", model.RoleAdmin)
	h, settings := settingEnv(users)

	c, rec := upsertCtx(adminID, model.SettingUPIID, `{"value":"florist@bank"}`)
	require.NoError(t, h.UpsertSetting(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeAuth(t, rec).Success)
	assert.Equal(t, "florist@bank", settings.values[model.SettingUPIID])
}

func TestUpsertSettingIdempotent(t *testing.T) {
	users := newStubUsers()
	adminID := users.seed(t, "boss@x.com", "validpass", model.RoleAdmin)
	h, settings := settingEnv(users)

	for i := 0; i < 2; i++ {
		c, rec := upsertCtx(adminID, model.SettingDeliveryPincodes, `{"value":"411001, 411002"}`)
		require.NoError(t, h.UpsertSetting(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Len(t, settings.values, 1, "replaying an upsert must not grow the table")
	assert.Equal(t, "411001, 411002", settings.values[model.SettingDeliveryPincodes])
}
