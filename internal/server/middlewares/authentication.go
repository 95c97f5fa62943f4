package middlewares

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// CurrentOwnerContextKey is the key to retrieve the current_owner from echo.Context.
const CurrentOwnerContextKey = "current_owner"

// Authenticate returns a bearer-token auth middleware.
// The JWT subject is the owner identity every repository query is scoped by.
// It stores current_owner into echo.Context.
func Authenticate(signingKey []byte) echo.MiddlewareFunc {
	check := echojwt.JWT(signingKey)

	fake := func(echo.Context) error {
		return nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(echo.HeaderAuthorization)
			if token(authorization) == "" {
				return unauthorized(c)
			}

			if err := check(fake)(c); err != nil {
				// Token is not valid.
				return unauthorized(c)
			}

			parsed, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthorized(c)
			}

			owner, err := parsed.Claims.GetSubject()
			if err != nil || owner == "" {
				return unauthorized(c)
			}

			// Store current_owner for handlers.
			c.Set(CurrentOwnerContextKey, owner)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error": echo.Map{
			"tag":     "invalid-auth",
			"message": "Invalid login credentials.",
		},
	})
}

func token(authorization string) string {
	parts := strings.Split(authorization, " ")
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
