package middleware

import (
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// HeaderAuthToken is the request header carrying the access token.
const HeaderAuthToken = "x-auth-token"

// AuthMiddleware provides the two authorization gate variants: Authenticate
// trusts the verified claims as-is, RequireAdmin additionally re-resolves the
// admin account from the store on every request.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	adminRepo repository.AdminRepository
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, adminRepo repository.AdminRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, adminRepo: adminRepo, logger: logger}
}

// Authenticate validates the access token and attaches the caller's identity
// to the request. The identity comes purely from the verified claims; no
// store lookup happens here. A token with an unknown kind still passes, with
// a zero identity attached.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.Request().Header.Get(HeaderAuthToken)
		if tokenString == "" {
			return domainerrors.ErrUnauthenticated
		}

		claims, err := m.tokenSvc.VerifyAccess(tokenString)
		if err != nil {
			return domainerrors.ErrInvalidToken
		}

		deliverycontext.SetIdentity(c, service.IdentityFromClaims(claims))

		return next(c)
	}
}

// RequireAdmin allows the request through only when the authenticated
// identity resolves to an admin account that still exists. A valid token
// whose admin row has been deleted is rejected; the downstream handler
// never runs. Must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := deliverycontext.GetIdentity(c)
		if !identity.IsAdmin() {
			return domainerrors.ErrForbidden.WrapMessage("admin access required")
		}

		admin, err := m.adminRepo.FindByID(c.Request().Context(), identity.ID)
		if err != nil {
			m.logger.Warn("Admin gate rejected token with no matching account",
				slog.Any("adminID", identity.ID),
			)

			return domainerrors.ErrForbidden.WrapMessage("admin account not found")
		}

		// Refresh the identity from the live record; the claims may be stale.
		identity.Username = admin.Username
		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}
