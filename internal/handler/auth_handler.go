package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"riseadvertising/internal/auth"
	"riseadvertising/internal/errors"
	"riseadvertising/internal/service"
)

const (
	refreshTokenCookie = "refresh_token"
	oauthStateCookie   = "oauth_state"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	oauthCfg     *oauth2.Config
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. oauthCfg may be nil, in which
// case Google sign-in answers 404.
func NewAuthHandler(authService service.AuthService, oauthCfg *oauth2.Config, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, oauthCfg: oauthCfg, secureCookie: secureCookie}
}

// LoginRequest represents an admin sign-in request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request. The cookie is used when
// the body is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest represents a sign-out request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ForgotPasswordRequest asks for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest sets a new password with a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	ExpiresIn    int         `json:"expires_in,omitempty"`
	User         interface{} `json:"user,omitempty"`
}

// SessionResponse wraps the current session, which is null when signed out.
type SessionResponse struct {
	Session *auth.Session `json:"session"`
}

func authError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_CREDENTIALS"})
	case stderrors.Is(err, service.ErrInvalidRefreshToken):
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_REFRESH_TOKEN"})
	case stderrors.Is(err, service.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{Error: err.Error(), Code: "EMAIL_TAKEN"})
	case stderrors.Is(err, service.ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error:  err.Error(),
			Code:   "WEAK_PASSWORD",
			Fields: map[string]string{"password": err.Error()},
		})
	case stderrors.Is(err, service.ErrInvalidResetToken):
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "INVALID_RESET_TOKEN"})
	default:
		return respondError(c, err)
	}
}

func (h *AuthHandler) setTokenCookies(c echo.Context, pair *service.TokenPair) {
	c.SetCookie(&http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(auth.AccessTokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	if pair.RefreshToken != "" {
		c.SetCookie(&http.Cookie{
			Name:     refreshTokenCookie,
			Value:    pair.RefreshToken,
			Path:     "/api/auth",
			MaxAge:   int(auth.RefreshTokenExpiry.Seconds()),
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *AuthHandler) clearTokenCookies(c echo.Context) {
	for name, path := range map[string]string{auth.AccessTokenCookie: "/", refreshTokenCookie: "/api/auth"} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     path,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   h.secureCookie,
		})
	}
}

// Login godoc
// @Summary Sign in to the admin console
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	pair, user, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return authError(c, err)
	}

	h.setTokenCookies(c, pair)
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         user,
	})
}

// Refresh godoc
// @Summary Refresh the access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest false "Refresh token; the cookie is used when omitted"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	_ = c.Bind(&req)
	token := h.refreshToken(c, req.RefreshToken)
	if token == "" {
		return authError(c, service.ErrInvalidRefreshToken)
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return authError(c, err)
	}

	h.setTokenCookies(c, &service.TokenPair{AccessToken: accessToken})
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(auth.AccessTokenExpiry.Seconds()),
	})
}

func (h *AuthHandler) refreshToken(c echo.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if ck, err := c.Cookie(refreshTokenCookie); err == nil {
		return ck.Value
	}
	return ""
}

// Logout godoc
// @Summary Sign out
// @Description Forgets the refresh token, revokes the current access token and clears the session cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest false "Refresh token"
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	_ = c.Bind(&req)
	ctx := c.Request().Context()

	session, err := h.authService.GetSession(ctx, auth.TokenFromRequest(c.Request()))
	if err != nil {
		log.Warn().Err(err).Msg("session lookup failed during logout")
	}

	if err := h.authService.SignOut(ctx, h.refreshToken(c, req.RefreshToken), session); err != nil &&
		!stderrors.Is(err, service.ErrInvalidRefreshToken) {
		return respondError(c, err)
	}

	h.clearTokenCookies(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "signed out"})
}

// Session godoc
// @Summary Current admin session
// @Description Returns {"session": null} when nobody is signed in.
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	session, err := h.authService.GetSession(c.Request().Context(), auth.TokenFromRequest(c.Request()))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, SessionResponse{Session: session})
}

// UpdateUser godoc
// @Summary Change the signed-in user's email or password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.UserUpdate true "New email and/or password"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/user [put]
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	session := auth.SessionFrom(c.Request().Context())
	if session == nil {
		return unauthorized()
	}

	var req service.UserUpdate
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateUser(c.Request().Context(), session.UserID, req)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Description Always answers 200 so the response does not reveal which accounts exist.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		log.Error().Err(err).Msg("forgot password failed")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "if that account exists, a reset link is on its way"})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return authError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags auth
// @Success 303
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	if h.oauthCfg == nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Error: "google sign-in is not configured", Code: "NOT_FOUND"})
	}
	state := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, h.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

type googleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// GoogleCallback godoc
// @Summary Finish Google sign-in
// @Description Signs in an existing admin user whose verified Google email matches, then redirects to the console.
// @Tags auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 303
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	const failure = "/admin/login?error=google"
	if h.oauthCfg == nil {
		return c.Redirect(http.StatusSeeOther, failure)
	}

	ck, err := c.Cookie(oauthStateCookie)
	if err != nil || ck.Value == "" || ck.Value != c.QueryParam("state") {
		return c.Redirect(http.StatusSeeOther, failure)
	}
	c.SetCookie(&http.Cookie{Name: oauthStateCookie, Path: "/", MaxAge: -1})

	ctx := c.Request().Context()
	tok, err := h.oauthCfg.Exchange(ctx, c.QueryParam("code"))
	if err != nil {
		log.Error().Err(err).Msg("exchange oauth code")
		return c.Redirect(http.StatusSeeOther, failure)
	}

	resp, err := h.oauthCfg.Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		log.Error().Err(err).Msg("fetch google userinfo")
		return c.Redirect(http.StatusSeeOther, failure)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&info) != nil || !info.EmailVerified {
		log.Warn().Int("status", resp.StatusCode).Msg("google userinfo rejected")
		return c.Redirect(http.StatusSeeOther, failure)
	}

	pair, _, err := h.authService.SignInWithEmail(ctx, info.Email)
	if err != nil {
		log.Info().Str("email", info.Email).Msg("google sign-in for unknown admin")
		return c.Redirect(http.StatusSeeOther, failure)
	}

	h.setTokenCookies(c, pair)
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "sign in to continue",
		Code:  "UNAUTHORIZED",
	})
}
