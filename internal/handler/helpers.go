package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"growmate/internal/auth"
	"growmate/internal/errors"
)

// ClaimsContextKey is where the JWT middleware stores *auth.Claims.
const ClaimsContextKey = "user"

// actorFrom returns the authenticated caller.
func actorFrom(c echo.Context) (auth.Actor, error) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	if !ok || claims == nil {
		return auth.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}
	return claims.Actor(), nil
}

// authorize rejects callers that are neither ownerID nor an admin.
func authorize(c echo.Context, ownerID string) (auth.Actor, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return actor, err
	}
	if !actor.CanAccess(ownerID) {
		return actor, respondError(errors.ErrForbidden)
	}
	return actor, nil
}

// respondError converts a domain error into an echo HTTP error.
func respondError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidBody(err error) error {
	msg := err.Error()
	if he, ok := err.(*echo.HTTPError); ok {
		msg = fmt.Sprint(he.Message)
	}
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body: " + msg,
		Code:  "INVALID_REQUEST",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_FAILED",
	})
}

// bindAndValidate decodes the request body into req and validates it.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return invalidBody(err)
	}
	if err := c.Validate(req); err != nil {
		return validationFailed(err)
	}
	return nil
}

// RequireAdmin rejects non-admin callers with 403.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, err := actorFrom(c)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return respondError(errors.ErrForbidden)
		}
		return next(c)
	}
}
