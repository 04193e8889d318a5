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

// UserHandler holds dependencies for user account handlers.
type UserHandler struct {
	userUC  usecase.UserUsecase
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(userUC usecase.UserUsecase, adminUC usecase.AdminUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUC:  userUC,
		adminUC: adminUC,
		logger:  logger,
	}
}

type registerUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type changeEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type changeNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerUserRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	info, err := h.userUC.Register(c.Request().Context(), usecase.RegisterUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, info, "User registered successfully")
}

// RegisterAdmin handles the admin registration request.
func (h *UserHandler) RegisterAdmin(c echo.Context) error {
	var input registerAdminRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	info, err := h.adminUC.Register(c.Request().Context(), usecase.RegisterAdminInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, info, "Admin registered successfully")
}

// GetProfile returns the caller's account as it currently exists in the
// store, not as the token claims describe it.
func (h *UserHandler) GetProfile(c echo.Context) error {
	identity := deliverycontext.GetIdentity(c)

	info, err := h.userUC.GetProfile(c.Request().Context(), identity.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, info, "")
}

// ChangeEmail updates the caller's email and returns a fresh access token.
func (h *UserHandler) ChangeEmail(c echo.Context) error {
	var input changeEmailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	identity := deliverycontext.GetIdentity(c)

	output, err := h.userUC.ChangeEmail(c.Request().Context(), usecase.ChangeEmailInput{
		UserID: identity.ID,
		Email:  input.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"user":         output.User,
	}, "Email updated successfully")
}

// ChangeName updates the caller's display name and returns a fresh access token.
func (h *UserHandler) ChangeName(c echo.Context) error {
	var input changeNameRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid name input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	identity := deliverycontext.GetIdentity(c)

	output, err := h.userUC.ChangeName(c.Request().Context(), usecase.ChangeNameInput{
		UserID: identity.ID,
		Name:   input.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"access_token": output.AccessToken,
		"user":         output.User,
	}, "Name updated successfully")
}
