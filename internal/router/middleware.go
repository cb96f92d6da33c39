package router

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/repository"
)

const tokenContextKey = "session_token"

// Identity resolves the admin from the session cookie. Requests without a usable session
// continue anonymously. A valid session naming a user that no longer exists ends with 404.
func Identity(sessions *auth.SessionManager, users repository.UserRepository, revocations auth.RevocationStore) echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		SigningKey:  sessions.SigningKey(),
		ContextKey:  tokenContextKey,
		TokenLookup: "cookie:" + auth.SessionCookie,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok || !token.Valid {
				return next(c)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return next(c)
			}

			ctx := c.Request().Context()
			if revoked, _ := revocations.IsRevoked(ctx, claims.ID); revoked {
				return next(c)
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					c.SetCookie(sessions.ClearCookie())
				}
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			auth.SetCurrentUser(c, user, claims)
			return next(c)
		})
	}
}

// RequireAdmin rejects requests without an admin session.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !auth.IsAuthenticated(c) {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrForbidden)
			return echo.NewHTTPError(http.StatusForbidden, httpErr.ToErrorResponse())
		}
		return next(c)
	}
}
