package context

import (
	"github.com/labstack/echo/v4"

	"storefront/internal/domain/entity"
)

// GetIdentity extracts the authenticated identity from echo.Context.
// Returns a zero identity if the authorization gate did not run.
func GetIdentity(c echo.Context) entity.Identity {
	if identity, ok := c.Get(string(KeyIdentity)).(entity.Identity); ok {
		return identity
	}

	return entity.Identity{}
}

// SetIdentity stores the authenticated identity in echo.Context.
func SetIdentity(c echo.Context, identity entity.Identity) {
	c.Set(string(KeyIdentity), identity)
}
