package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/form"
	"portfolio/internal/service"
	"portfolio/internal/view"
)

// ProfileHandler serves the home page and the profile editor.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Home renders the welcome page.
func (h *ProfileHandler) Home(c echo.Context) error {
	profile, err := h.profileService.Current(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, "")
	page.Profile = profile
	return c.Render(http.StatusOK, "index.html", page)
}

// EditPage renders the profile form, pre-populated when a profile exists.
func (h *ProfileHandler) EditPage(c echo.Context) error {
	profile, err := h.profileService.Current(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, "Edit Profile")
	page.Form = form.ProfileForm{}
	if profile != nil {
		page.Form = form.ProfileFormFrom(profile)
	}
	return c.Render(http.StatusOK, "profile_form.html", page)
}

// Edit saves the profile.
func (h *ProfileHandler) Edit(c echo.Context) error {
	var req form.ProfileForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}
	if errs != nil {
		page := view.NewPage(c, "Edit Profile")
		page.Form = req
		page.Errors = errs
		return c.Render(http.StatusUnprocessableEntity, "profile_form.html", page)
	}

	if _, err := h.profileService.Save(c.Request().Context(), req.Profile()); err != nil {
		return fail(c, err)
	}
	return c.Redirect(http.StatusFound, "/")
}
