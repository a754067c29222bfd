package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the typed ActingUser into the request context.
// The provided secret must match the one used when issuing tokens.
// This middleware wraps every protected route; handlers read the
// caller via ActingUserFrom and never touch raw claims themselves.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// HS256 only; tokens signed any other way are rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			user, ok := actingUserFromClaims(claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			c.Set(actingUserKey, user)
			// The role is mirrored under its own key for middleware
			// (RequireRole, rate-limit key building) that runs without
			// the typed view.
			c.Set("role", user.Role)
			return next(c)
		}
	}
}

// actingUserFromClaims builds the typed user from the subject and role
// claims.  The subject is numeric (users.id); JSON numbers arrive as
// float64.
func actingUserFromClaims(claims jwt.MapClaims) (ActingUser, bool) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return ActingUser{}, false
	}
	switch sub := claims["sub"].(type) {
	case float64:
		return ActingUser{ID: uint64(sub), Role: role}, true
	case string:
		// Tolerate string subjects from older tokens.
		var id uint64
		for i := 0; i < len(sub); i++ {
			if sub[i] < '0' || sub[i] > '9' {
				return ActingUser{}, false
			}
			id = id*10 + uint64(sub[i]-'0')
		}
		if sub == "" {
			return ActingUser{}, false
		}
		return ActingUser{ID: id, Role: role}, true
	}
	return ActingUser{}, false
}
