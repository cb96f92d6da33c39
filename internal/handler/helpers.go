package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"portfolio/internal/errors"
	"portfolio/internal/form"
)

// fail converts a domain error into an echo HTTP error. Unexpected errors are logged
// because their message never reaches the client.
func fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindForm binds the submitted form into f and validates it. Field failures come back as
// form.Errors; any other error is terminal.
func bindForm(c echo.Context, f interface{}) (form.Errors, error) {
	if err := c.Bind(f); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid form submission",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(f); err != nil {
		if errs, ok := form.AsErrors(err); ok {
			return errs, nil
		}
		return nil, err
	}
	return nil, nil
}

// pathID parses the :id route parameter. Anything that is not a positive integer cannot
// name a record.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrNotFound
	}
	return uint(id), nil
}
