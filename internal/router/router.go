package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/form"
	"portfolio/internal/handler"
	"portfolio/internal/repository"
	"portfolio/internal/view"
)

const (
	csrfCookie        = "_csrf"
	contactBurst      = 3
	rateLimiterExpiry = 3 * time.Minute
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *auth.SessionManager,
	users repository.UserRepository,
	revocations auth.RevocationStore,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	profileHandler *handler.ProfileHandler,
	contactHandler *handler.ContactHandler,
	apiHandler *handler.APIHandler,
) error {
	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.Renderer = renderer
	e.Validator = form.NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "header:" + echo.HeaderXCSRFToken + ",form:_csrf",
		CookieName:     csrfCookie,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(Identity(sessions, users, revocations))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.StaticFS("/static", view.Static())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public pages
	e.GET("/", profileHandler.Home)
	e.GET("/project", projectHandler.List)
	e.GET("/project-element/:id", projectHandler.Detail)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/contact", contactHandler.Page)
	e.POST("/contact", contactHandler.Submit, contactLimiter(cfg.ContactRate))

	// Admin pages
	e.GET("/logout", authHandler.Logout, RequireAdmin)
	e.GET("/post-project", projectHandler.NewPage, RequireAdmin)
	e.POST("/post-project", projectHandler.Create, RequireAdmin)
	e.GET("/edit-project/:id", projectHandler.EditPage, RequireAdmin)
	e.POST("/edit-project/:id", projectHandler.Update, RequireAdmin)
	e.GET("/delete/:id", projectHandler.DeletePage, RequireAdmin)
	e.POST("/delete/:id", projectHandler.Delete, RequireAdmin)
	e.GET("/edit-profile", profileHandler.EditPage, RequireAdmin)
	e.POST("/edit-profile", profileHandler.Edit, RequireAdmin)

	// JSON feed
	api := e.Group("/api")
	api.GET("/projects", apiHandler.ListProjects)
	api.GET("/projects/:id", apiHandler.GetProject)

	return nil
}

// contactLimiter throttles contact submissions per client IP.
func contactLimiter(perSecond float64) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     contactBurst,
		ExpiresIn: rateLimiterExpiry,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many messages, try again later",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// logLevel maps LOG_LEVEL to the echo logger level. Unknown values mean info.
func logLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
