// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshCookieName is the http-only cookie carrying the refresh token.
const RefreshCookieName = "refresh-token"

// AuthHandler holds dependencies for the session lifecycle endpoints.
type AuthHandler struct {
	userUC   usecase.UserUsecase
	adminUC  usecase.AdminUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(userUC usecase.UserUsecase, adminUC usecase.AdminUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userUC:   userUC,
		adminUC:  adminUC,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

type userLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserLogin handles the user login request and sets the refresh cookie.
func (h *AuthHandler) UserLogin(c echo.Context) error {
	var input userLoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.userUC.Login(c.Request().Context(), usecase.UserLoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"user":         output.User,
	}, "Login successful")
}

// UserRefresh mints a new access token from the refresh cookie. The claims
// in the new token come from the user's current stored record.
func (h *AuthHandler) UserRefresh(c echo.Context) error {
	id, err := h.refreshPrincipal(c, entity.PrincipalUser)
	if err != nil {
		return err
	}

	output, err := h.userUC.Refresh(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"user":         output.User,
	}, "Token refreshed successfully")
}

// AdminLogin handles the admin login request and sets the refresh cookie.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var input adminLoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.adminUC.Login(c.Request().Context(), usecase.AdminLoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"admin":        output.Admin,
	}, "Login successful")
}

// AdminRefresh mints a new access token for an admin from the refresh cookie.
func (h *AuthHandler) AdminRefresh(c echo.Context) error {
	id, err := h.refreshPrincipal(c, entity.PrincipalAdmin)
	if err != nil {
		return err
	}

	output, err := h.adminUC.Refresh(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"admin":        output.Admin,
	}, "Token refreshed successfully")
}

// Logout clears the refresh cookie. Without a cookie there is no session to
// end, which is a 403 just like an unreadable refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := c.Cookie(RefreshCookieName); err != nil {
		return domainerrors.ErrRefreshTokenMissing
	}

	clearRefreshCookie(c)

	return c.NoContent(http.StatusNoContent)
}

// refreshPrincipal reads and verifies the refresh cookie and returns the
// principal ID it was issued to, enforcing the expected principal kind.
func (h *AuthHandler) refreshPrincipal(c echo.Context, kind entity.PrincipalKind) (uuid.UUID, error) {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil {
		return uuid.Nil, domainerrors.ErrRefreshTokenMissing
	}

	claims, err := h.tokenSvc.VerifyRefresh(cookie.Value)
	if err != nil {
		return uuid.Nil, domainerrors.ErrRefreshTokenInvalid
	}

	identity := service.IdentityFromClaims(claims)
	if identity.Kind != kind {
		return uuid.Nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token issued to a different principal kind")
	}

	return identity.ID, nil
}

func setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
