package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/form"
	"portfolio/internal/service"
	"portfolio/internal/view"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Page renders the empty contact form.
func (h *ContactHandler) Page(c echo.Context) error {
	page := view.NewPage(c, "Contact")
	page.Form = form.ContactForm{}
	return c.Render(http.StatusOK, "contact.html", page)
}

// Submit forwards the message to the site owner.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req form.ContactForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	page := view.NewPage(c, "Contact")
	page.Form = req
	if errs != nil {
		page.Errors = errs
		return c.Render(http.StatusUnprocessableEntity, "contact.html", page)
	}

	msg := service.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.contactService.Submit(c.Request().Context(), msg); err != nil {
		return fail(c, err)
	}

	page.MsgSent = true
	return c.Render(http.StatusOK, "contact.html", page)
}
