package auth

import (
	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
)

const (
	userContextKey   = "current_user"
	claimsContextKey = "session_claims"
)

// SetCurrentUser binds the resolved admin and the session claims to the request.
func SetCurrentUser(c echo.Context, user *model.User, claims *Claims) {
	c.Set(userContextKey, user)
	c.Set(claimsContextKey, claims)
}

// CurrentUser returns the authenticated admin, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// CurrentClaims returns the claims of the session that authenticated the request.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// IsAuthenticated reports whether the request carries a resolved admin identity.
func IsAuthenticated(c echo.Context) bool {
	return CurrentUser(c) != nil
}
