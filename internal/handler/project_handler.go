package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/form"
	"portfolio/internal/service"
	"portfolio/internal/view"
)

const duplicateProjectMessage = "A project with this name already exists."

// ProjectHandler serves the project pages.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List renders every project.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, "Projects")
	page.Projects = projects
	return c.Render(http.StatusOK, "projects.html", page)
}

// Detail renders one project.
func (h *ProjectHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, project.ProjectName)
	page.Project = project
	return c.Render(http.StatusOK, "project.html", page)
}

// NewPage renders an empty project form.
func (h *ProjectHandler) NewPage(c echo.Context) error {
	return h.renderForm(c, http.StatusOK, "/post-project", form.ProjectForm{}, nil)
}

// Create stores a new project.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req form.ProjectForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.renderForm(c, http.StatusUnprocessableEntity, "/post-project", req, errs)
	}

	project, err := h.projectService.Create(c.Request().Context(), req.Project())
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return h.renderForm(c, http.StatusConflict, "/post-project", req, form.Errors{"project_title": duplicateProjectMessage})
		}
		return fail(c, err)
	}

	c.Logger().Infof("project %d created", project.ID)
	return c.Redirect(http.StatusFound, "/project")
}

// EditPage renders the form pre-populated with the stored project.
func (h *ProjectHandler) EditPage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return h.renderForm(c, http.StatusOK, editAction(id), form.ProjectFormFrom(project), nil)
}

// Update overwrites a stored project.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if _, err := h.projectService.Get(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}

	var req form.ProjectForm
	errs, err := bindForm(c, &req)
	if err != nil {
		return err
	}
	if errs != nil {
		return h.renderForm(c, http.StatusUnprocessableEntity, editAction(id), req, errs)
	}

	if _, err := h.projectService.Update(c.Request().Context(), id, req.Project()); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return h.renderForm(c, http.StatusConflict, editAction(id), req, form.Errors{"project_title": duplicateProjectMessage})
		}
		return fail(c, err)
	}

	c.Logger().Infof("project %d updated", id)
	return c.Redirect(http.StatusFound, fmt.Sprintf("/project-element/%d", id))
}

// DeletePage asks for confirmation. Nothing is removed.
func (h *ProjectHandler) DeletePage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	page := view.NewPage(c, "Delete "+project.ProjectName)
	page.Project = project
	return c.Render(http.StatusOK, "delete.html", page)
}

// Delete removes a project permanently.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}

	if err := h.projectService.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}

	c.Logger().Infof("project %d deleted", id)
	return c.Redirect(http.StatusFound, "/project")
}

func (h *ProjectHandler) renderForm(c echo.Context, status int, action string, f form.ProjectForm, errs form.Errors) error {
	title := "New Project"
	if action != "/post-project" {
		title = "Edit Project"
	}

	page := view.NewPage(c, title)
	page.Action = action
	page.Form = f
	page.Errors = errs
	return c.Render(status, "project_form.html", page)
}

func editAction(id uint) string {
	return fmt.Sprintf("/edit-project/%d", id)
}
