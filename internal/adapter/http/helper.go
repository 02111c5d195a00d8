package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	domain "lendingbook/internal/domain/ledger"
)

// writeError translates the domain taxonomy onto status codes. Remote
// sync failures never arrive here; they are absorbed inside the save path.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
}

func validationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
}

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
