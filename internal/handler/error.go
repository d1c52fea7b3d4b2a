package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/irfanbayu/keydash/internal/service"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	switch e := err.(type) {
	case *echo.HTTPError:
		c.Logger().Errorf(
			"handler internal error %s [%d]: %+v\n",
			c.Request().URL.Path, e.Code, e.Internal,
		)
		if err := c.JSON(e.Code, map[string]any{"error": e.Message}); err != nil {
			log.Printf("err returning json: %+v\n", err)
		}
	default:
		c.Logger().Errorf("handler error: %+v\n", e)
		if err := c.JSON(
			http.StatusInternalServerError,
			map[string]any{"error": "something went terribly wrong"},
		); err != nil {
			log.Printf("err returning json: %+v\n", err)
		}
	}
}

func newError(c echo.Context, err error, status int, message string) error {
	e := echo.NewHTTPError(status, message)
	if err != nil {
		e = e.WithInternal(err)
	}
	return e
}

// serviceError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is a transient failure and keeps only the fallback message.
func serviceError(c echo.Context, err error, message string) error {
	var inputErr *service.InvalidInputError
	if errors.As(err, &inputErr) {
		return newError(c, err, http.StatusBadRequest, inputErr.Message)
	}
	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		return newError(c, err, http.StatusNotFound, notFoundErr.Error())
	}
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		return newError(c, err, http.StatusConflict, conflictErr.Message)
	}
	var allocErr *service.KeyAllocationError
	if errors.As(err, &allocErr) {
		return newError(c, err, http.StatusInternalServerError, allocErr.Error())
	}
	return newError(c, err, http.StatusInternalServerError, message)
}
