package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/view"
)

// ErrorHandler renders failures as the error page, or as JSON for the /api feed.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, resp := errorResponse(err)
	var he *echo.HTTPError
	if status == http.StatusInternalServerError && !errors.As(err, &he) {
		c.Logger().Error(err)
	}

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(status)
	case strings.HasPrefix(c.Request().URL.Path, "/api/"):
		writeErr = c.JSON(status, resp)
	default:
		page := view.NewPage(c, http.StatusText(status))
		page.Status = status
		page.Message = resp.Error
		writeErr = c.Render(status, "error.html", page)
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func errorResponse(err error) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		httpErr := apperrors.MapErrorToHTTP(err)
		return httpErr.StatusCode, httpErr.ToErrorResponse()
	}

	switch msg := he.Message.(type) {
	case apperrors.ErrorResponse:
		return he.Code, msg
	case string:
		return he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
	default:
		return he.Code, apperrors.ErrorResponse{Error: http.StatusText(he.Code), Code: statusCode(he.Code)}
	}
}

// statusCode turns 404 into "NOT_FOUND".
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
