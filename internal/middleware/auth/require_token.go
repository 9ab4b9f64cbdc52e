package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mkuznetsov/product_catalog/internal/tokens"
)

// RequireToken guards mutating routes. It only looks at the Authorization
// header and the signing secret; there is no store lookup, so a token stays
// valid until it expires no matter what happened to the user behind it.
func RequireToken(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			claims, err := tokens.Parse(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			setUserContext(c, claims)
			return next(c)
		}
	}
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	if id, err := claims.UserID(); err == nil {
		c.Set("userID", id)
	}
	c.Set("username", claims.Username)
}

// Username reports the identity the gate attached to the request.
func Username(c echo.Context) (string, bool) {
	name, ok := c.Get("username").(string)
	return name, ok
}
