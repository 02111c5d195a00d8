package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lendingbook/internal/usecase/monitor"
)

type Handler struct{ mon *monitor.Monitor }

func NewHandler(mon *monitor.Monitor) *Handler { return &Handler{mon: mon} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Usage reports the remote document quota status. Forces a probe when
// none has happened yet.
func (h *Handler) Usage(c echo.Context) error {
	if u, ok := h.mon.Last(); ok {
		return c.JSON(http.StatusOK, u)
	}
	u, err := h.mon.Check(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "remote store unreachable"})
	}
	return c.JSON(http.StatusOK, u)
}
