package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

type AuthHandler struct{ uc *ledgeruc.Usecase }

func NewAuthHandler(uc *ledgeruc.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type credentialReq struct {
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	role, err := h.uc.Login(c.Request().Context(), req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"role": string(role)})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	h.uc.Logout()
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) VerifyAdmin(c echo.Context) error {
	var req credentialReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	if err := h.uc.VerifyAdmin(req.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// RequireAdmin gates the settings surface the way the original gated
// its settings tab: the admin secret travels in a header and is checked
// on every request.
func RequireAdmin(uc *ledgeruc.Usecase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := uc.VerifyAdmin(c.Request().Header.Get("X-Admin-Password")); err != nil {
				return writeError(c, err)
			}
			return next(c)
		}
	}
}
