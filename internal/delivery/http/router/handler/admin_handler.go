package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for admin account handlers. Every route
// here sits behind the admin-only gate.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(adminUC usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminUC: adminUC,
		logger:  logger,
	}
}

type changeUsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

type changePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// GetAccount returns the caller's live admin account info.
func (h *AdminHandler) GetAccount(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)

	info, err := h.adminUC.GetAccount(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "")
}

// ChangeUsername updates the caller's username and returns a fresh access token.
func (h *AdminHandler) ChangeUsername(c echo.Context) error {
	var input changeUsernameRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid username input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	identity := deliverycontext.GetIdentity(c)

	output, err := h.adminUC.ChangeUsername(c.Request().Context(), usecase.ChangeUsernameInput{
		AdminID:  identity.ID,
		Username: input.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"admin":        output.Admin,
	}, "Username updated successfully")
}

// ChangePassword re-hashes and stores the caller's password.
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	var input changePasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	identity := deliverycontext.GetIdentity(c)

	output, err := h.adminUC.ChangePassword(c.Request().Context(), usecase.ChangePasswordInput{
		AdminID:  identity.ID,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"admin":        output.Admin,
	}, "Password updated successfully")
}
