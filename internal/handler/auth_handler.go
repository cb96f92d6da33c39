package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/form"
	"portfolio/internal/model"
	"portfolio/internal/service"
	"portfolio/internal/view"
)

// AuthHandler handles admin registration and sessions.
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterPage renders the registration form. Once the admin exists the form is shown
// with the rejection message up front.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	state, err := h.authService.State(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, "Register")
	page.Form = form.RegisterForm{}
	if state == model.Provisioned {
		page.Flash = apperrors.ErrAdminExists.Error()
	}
	return c.Render(http.StatusOK, "register.html", page)
}

// Register creates the single admin account.
func (h *AuthHandler) Register(c echo.Context) error {
	var req form.RegisterForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	page := view.NewPage(c, "Register")
	page.Form = form.RegisterForm{Name: req.Name, Email: req.Email}
	if errs != nil {
		page.Errors = errs
		return c.Render(http.StatusUnprocessableEntity, "register.html", page)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminExists) {
			page.Flash = err.Error()
			return c.Render(http.StatusConflict, "register.html", page)
		}
		return fail(c, err)
	}

	c.Logger().Infof("admin account %d registered", user.ID)
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	page := view.NewPage(c, "Log In")
	page.Form = form.LoginForm{}
	return c.Render(http.StatusOK, "login.html", page)
}

// Login verifies the credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req form.LoginForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	page := view.NewPage(c, "Log In")
	page.Form = form.LoginForm{Email: req.Email}
	if errs != nil {
		page.Errors = errs
		return c.Render(http.StatusUnprocessableEntity, "login.html", page)
	}

	token, _, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			page.Flash = err.Error()
			return c.Render(http.StatusUnauthorized, "login.html", page)
		}
		return fail(c, err)
	}

	c.SetCookie(h.sessions.Cookie(token))
	c.Logger().Infof("admin %d logged in", user.ID)
	return c.Redirect(http.StatusFound, "/")
}

// Logout revokes the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), auth.CurrentClaims(c)); err != nil {
		c.Logger().Warnf("revoke session: %v", err)
	}
	c.SetCookie(h.sessions.ClearCookie())
	c.Logger().Info("admin logged out")
	return c.Redirect(http.StatusFound, "/")
}
