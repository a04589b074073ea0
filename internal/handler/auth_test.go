package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floramart/storefront/internal/config"
	"github.com/floramart/storefront/internal/handler"
	"github.com/floramart/storefront/internal/model"
	"github.com/floramart/storefront/internal/repository"
	"github.com/floramart/storefront/internal/utils"
)

// stubUsers is an in-memory UserStore.  profileDelay simulates a slow role
// read so tests can check the landing path is computed from the fetched
// role, not from a default chosen before the lookup finished.
type stubUsers struct {
	byEmail      map[string]model.User
	profiles     map[uint64]model.Profile
	nextID       uint64
	creates      int
	profileDelay time.Duration
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byEmail:  make(map[string]model.User),
		profiles: make(map[uint64]model.Profile),
	}
}

func (s *stubUsers) Create(_ context.Context, email, password, fullName, phone string, cost int) (uint64, error) {
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := model.User{ID: s.nextID, Email: email, PasswordHash: hash, IsActive: true}
	s.byEmail[email] = u
	s.profiles[u.ID] = model.Profile{UserID: u.ID, FullName: fullName, Phone: phone, Role: model.RoleCustomer}
	s.creates++
	return u.ID, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *stubUsers) GetProfile(_ context.Context, userID uint64) (model.Profile, error) {
	if s.profileDelay > 0 {
		time.Sleep(s.profileDelay)
	}
	p, ok := s.profiles[userID]
	if !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, userID uint64, fullName, phone string) error {
	p, ok := s.profiles[userID]
	if !ok {
		return repository.ErrNotFound
	}
	p.FullName, p.Phone = fullName, phone
	s.profiles[userID] = p
	return nil
}

// seed registers a user directly and pins its role.
func (s *stubUsers) seed(t *testing.T, email, password, role string) uint64 {
	t.Helper()
	id, err := s.Create(context.Background(), email, password, "Seed User", "", 4)
	require.NoError(t, err)
	p := s.profiles[id]
	p.Role = role
	s.profiles[id] = p
	return id
}

type stubTokens struct {
	byHash map[string]uint64
	stores int
}

func newStubTokens() *stubTokens { return &stubTokens{byHash: make(map[string]uint64)} }

func (s *stubTokens) StoreRefresh(_ context.Context, userID uint64, tokenHash string, _ time.Time) error {
	s.byHash[tokenHash] = userID
	s.stores++
	return nil
}

func (s *stubTokens) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	id, ok := s.byHash[tokenHash]
	if !ok {
		return 0, errors.New("refresh token not found")
	}
	return id, nil
}

func (s *stubTokens) RevokeByHash(_ context.Context, tokenHash string) error {
	delete(s.byHash, tokenHash)
	return nil
}

func (s *stubTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	for h, id := range s.byHash {
		if id == userID {
			delete(s.byHash, h)
		}
	}
	return nil
}

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
}

func postJSON(h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h(e.NewContext(req, rec))
	return rec
}

// authBody covers every field the auth endpoints may return.
type authBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Next    string `json:"next"`
	User    struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
	Refresh struct {
		Token string `json:"token"`
	} `json:"refresh"`
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authBody {
	t.Helper()
	var b authBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	return b
}

func TestRegisterPointsAtLoginPage(t *testing.T) {
	users := newStubUsers()
	h := handler.NewAuthHandler(testConfig(), users, newStubTokens())

	rec := postJSON(h.Register, "/v1/auth/register", `{"email":"a@x.com","password":"validpass"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	b := decodeAuth(t, rec)
	assert.True(t, b.Success)
	assert.Equal(t, "/login?registered=true", b.Next)
	assert.Empty(t, b.Access.Token, "registering must not start a session")

	u, err := users.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, users.profiles[u.ID].Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUsers()
	users.seed(t, "a@x.com", "validpass", model.RoleCustomer)
	h := handler.NewAuthHandler(testConfig(), users, newStubTokens())

	rec := postJSON(h.Register, "/v1/auth/register", `{"email":"a@x.com","password":"otherpass"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "An account with this email already exists.", decodeAuth(t, rec).Error)
}

func TestRegisterShortPassword(t *testing.T) {
	users := newStubUsers()
	h := handler.NewAuthHandler(testConfig(), users, newStubTokens())

	rec := postJSON(h.Register, "/v1/auth/register", `{"email":"a@x.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, users.creates, "rejected registration must not write")
}

func TestLoginLandingPathFollowsRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		next string
	}{
		{"admin lands on dashboard", model.RoleAdmin, "/admin"},
		{"customer lands on account", model.RoleCustomer, "/account"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newStubUsers()
			users.seed(t, "who@x.com", "validpass", tt.role)
			tokens := newStubTokens()
			h := handler.NewAuthHandler(testConfig(), users, tokens)

			rec := postJSON(h.Login, "/v1/auth/login", `{"email":"who@x.com","password":"validpass"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			b := decodeAuth(t, rec)
			assert.True(t, b.Success)
			assert.Equal(t, tt.next, b.Next)
			assert.Equal(t, tt.role, b.User.Role)
			assert.NotEmpty(t, b.Access.Token)
			assert.NotEmpty(t, b.Refresh.Token)
			assert.Equal(t, 1, tokens.stores)
		})
	}
}

func TestLoginWaitsForSlowRoleLookup(t *testing.T) {
	users := newStubUsers()
	users.seed(t, "boss@x.com", "validpass", model.RoleAdmin)
	users.profileDelay = 50 * time.Millisecond
	h := handler.NewAuthHandler(testConfig(), users, newStubTokens())

	rec := postJSON(h.Login, "/v1/auth/login", `{"email":"boss@x.com","password":"validpass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin", decodeAuth(t, rec).Next,
		"landing path must come from the fetched role, never a premature default")
}

func TestLoginBadCredentials(t *testing.T) {
	users := newStubUsers()
	users.seed(t, "a@x.com", "validpass", model.RoleCustomer)
	tokens := newStubTokens()
	h := handler.NewAuthHandler(testConfig(), users, tokens)

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email":"a@x.com","password":"wrongpass"}`},
		{"unknown email", `{"email":"nobody@x.com","password":"validpass"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(h.Login, "/v1/auth/login", tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			// Same message either way; the endpoint must not reveal which
			// part of the credential pair was wrong.
			assert.Equal(t, "Invalid email or password.", decodeAuth(t, rec).Error)
		})
	}
	assert.Zero(t, tokens.stores)
}

func TestResetRequestNeverRevealsAccounts(t *testing.T) {
	users := newStubUsers()
	users.seed(t, "a@x.com", "validpass", model.RoleCustomer)
	h := handler.NewAuthHandler(testConfig(), users, newStubTokens())

	known := postJSON(h.RequestPasswordReset, "/v1/auth/reset-password", `{"email":"a@x.com"}`)
	unknown := postJSON(h.RequestPasswordReset, "/v1/auth/reset-password", `{"email":"nobody@x.com"}`)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, decodeAuth(t, known).Message, decodeAuth(t, unknown).Message)
}
