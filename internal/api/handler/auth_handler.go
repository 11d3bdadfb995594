package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// RefreshCookieName is the HTTP-only cookie carrying the refresh token.
const RefreshCookieName = "jwt"

// CookieConfig controls the refresh cookie attributes.
type CookieConfig struct {
	// Secure is false only for local development over plain HTTP.
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new user account and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IP:       c.RealIP(),
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken)
	return c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Login authenticates a user and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		IP:       c.RealIP(),
	})
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, res.RefreshToken)
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Logout closes the session. It always succeeds and always clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	in := ports.LogoutInput{IP: c.RealIP(), AccessToken: bearerToken(c)}
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		in.RefreshToken = cookie.Value
	}

	h.authService.Logout(c.Request().Context(), in)

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// Refresh rotates the refresh token from the cookie and returns a new access token.
//
// @Summary      Rotate the refresh token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  accessTokenResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/refresh-token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		token = cookie.Value
	}

	pair, err := h.authService.Refresh(c.Request().Context(), token)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.cookie.MaxAge / time.Second),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// bearerToken returns the token of an "Authorization: Bearer" header, if any.
func bearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func toAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{
		ID:          res.User.ID,
		Name:        res.User.Name,
		Email:       res.User.Email,
		Role:        res.User.Role,
		AccessToken: res.AccessToken,
	}
}
