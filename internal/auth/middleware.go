package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys for storing session data in Echo context. Other packages
// access the authenticated user's information via the exported getters
// below.
const (
	contextKeyUser = "auth_user"
)

// RequireAuth returns middleware that validates the session cookie and
// injects the user snapshot into the request context. Requests without a
// valid session get a 401 JSON response.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := service.Status(c.Request().Context(), getSessionToken(c))
			if err != nil {
				return err
			}
			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": "Não autorizado",
				})
			}

			c.Set(contextKeyUser, user)

			return next(c)
		}
	}
}

// GetUser retrieves the authenticated user snapshot from the Echo context.
// Returns nil if the request is not authenticated (middleware not applied).
func GetUser(c echo.Context) *UserSnapshot {
	user, ok := c.Get(contextKeyUser).(*UserSnapshot)
	if !ok {
		return nil
	}
	return user
}
