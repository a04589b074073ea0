package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/floramart/storefront/internal/authz"
	"github.com/floramart/storefront/internal/config"
	"github.com/floramart/storefront/internal/repository"
	"github.com/floramart/storefront/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.  Every response
// is an authz.Outcome (possibly extended with tokens): navigation after a
// flow is reported as data in the "next" field, never performed server-side.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore) *AuthHandler {
	if u == nil || t == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type resetReq struct {
	Email string `json:"email"`
}
type profileReq struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type loginResp struct {
	authz.Outcome
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register creates a user with a customer profile.  On success the caller is
// pointed at the login page with the registered flag; no session is issued
// until the user actually signs in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("email and password are required"))
	}
	// Self-service flow: the validation message is safe and actionable.
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, authz.Failed("Password must be at least 8 characters."))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Email, req.Password, req.FullName, req.Phone, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, authz.Failed("An account with this email already exists."))
		}
		log.Printf("auth: create user failed for %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not create your account. Please try again."))
	}
	return c.JSON(http.StatusCreated, authz.OKNext(authz.PathRegistered))
}

// Login verifies credentials and issues a token pair.  The landing path is
// computed from the profile role, and only after that lookup has returned:
// responding with the default target while the role read is in flight would
// send admins to the customer account page.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("email and password are required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, authz.Failed("Invalid email or password."))
		}
		log.Printf("auth: load user failed for %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-in failed. Please try again."))
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, authz.Failed("Invalid email or password."))
	}

	// Role lookup must complete before the navigation branch below.
	profile, err := h.Users.GetProfile(ctx, u.ID)
	if err != nil {
		log.Printf("auth: load profile failed for user %d: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-in failed. Please try again."))
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, profile.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-in failed. Please try again."))
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-in failed. Please try again."))
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		log.Printf("auth: store refresh failed for user %d: %v", u.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-in failed. Please try again."))
	}

	return c.JSON(http.StatusOK, loginResp{
		Outcome: authz.OKNext(authz.LandingPath(profile.Role)),
		User:    userPart{ID: u.ID, Email: u.Email, Role: profile.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("refresh_token required"))
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, authz.Failed("invalid refresh token"))
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not refresh your session."))
	}
	profile, err := h.Users.GetProfile(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not refresh your session."))
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, u.Email, profile.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not refresh your session."))
	}
	newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not refresh your session."))
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not refresh your session."))
	}

	return c.JSON(http.StatusOK, loginResp{
		Outcome: authz.OK(),
		User:    userPart{ID: userID, Email: u.Email, Role: profile.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
	})
}

// Logout revokes the supplied refresh token, or with a valid bearer and no
// body token, every session of the current user.  Either way the caller is
// pointed back at the public home page.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, authz.Failed("invalid refresh token"))
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			log.Printf("auth: revoke refresh failed: %v", err)
			return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-out failed. Please try again."))
		}
		return c.JSON(http.StatusOK, authz.OKNext(authz.PathHome))
	}

	if p, ok := authz.PrincipalFrom(c); ok {
		if err := h.Tokens.RevokeAllForUser(ctx, p.ID); err != nil {
			log.Printf("auth: revoke all failed for user %d: %v", p.ID, err)
			return c.JSON(http.StatusInternalServerError, authz.Failed("Sign-out failed. Please try again."))
		}
		return c.JSON(http.StatusOK, authz.OKNext(authz.PathHome))
	}
	return c.JSON(http.StatusBadRequest, authz.Failed("provide a refresh_token or an Authorization header"))
}

// RequestPasswordReset accepts an email and always reports success so the
// endpoint cannot be used to probe which emails have accounts.  The actual
// reset mail is dispatched out of band; here we only log the request.
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("email required"))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		log.Printf("auth: password reset requested for %s", email)
	}
	// No navigation for this flow; the caller stays put and checks email.
	return c.JSON(http.StatusOK, authz.OKMessage("If that email has an account, a reset link is on its way. Check your inbox."))
}

// Me returns the authenticated principal with its stored profile.
func (h *AuthHandler) Me(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	profile, err := h.Users.GetProfile(ctx, p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not load your profile."))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":    userPart{ID: p.ID, Email: p.Email, Role: profile.Role},
		"profile": profile,
	})
}

// UpdateMyProfile lets the signed-in user change their own name and phone.
// Role is not a reachable field through this path.
func (h *AuthHandler) UpdateMyProfile(c echo.Context) error {
	p, ok := authz.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authz.Failed(authz.MsgLoginRequired))
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authz.Failed("invalid request body"))
	}
	if strings.TrimSpace(req.FullName) == "" {
		return c.JSON(http.StatusBadRequest, authz.Failed("full_name is required"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.UpdateProfile(ctx, p.ID, req.FullName, req.Phone); err != nil {
		log.Printf("auth: update profile failed for user %d: %v", p.ID, err)
		return c.JSON(http.StatusInternalServerError, authz.Failed("Could not update your profile."))
	}
	return c.JSON(http.StatusOK, authz.OK())
}
