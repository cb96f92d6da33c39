package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/model"
	"portfolio/internal/service"
)

// APIHandler serves the read-only JSON project feed.
type APIHandler struct {
	projectService service.ProjectService
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(projectService service.ProjectService) *APIHandler {
	return &APIHandler{projectService: projectService}
}

// ProjectListResponse represents the project feed.
type ProjectListResponse struct {
	Projects []model.ProjectPost `json:"projects"`
	Count    int                 `json:"count"`
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *APIHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if projects == nil {
		projects = []model.ProjectPost{}
	}

	return c.JSON(http.StatusOK, ProjectListResponse{
		Projects: projects,
		Count:    len(projects),
	})
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} model.ProjectPost
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *APIHandler) GetProject(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}

	project, err := h.projectService.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, project)
}
