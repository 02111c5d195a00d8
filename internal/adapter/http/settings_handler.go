package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

// SettingsHandler serves the admin-gated surface; routes are mounted
// behind RequireAdmin.
type SettingsHandler struct{ uc *ledgeruc.Usecase }

func NewSettingsHandler(uc *ledgeruc.Usecase) *SettingsHandler { return &SettingsHandler{uc: uc} }

func (h *SettingsHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Settings())
}

type changePasswordReq struct {
	Password string `json:"password" validate:"required"`
}

func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	if err := h.uc.ChangePassword(c.Request().Context(), req.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type updateRatesReq struct {
	Interest decimal.Decimal `json:"interest" validate:"gte=0"`
	Penalty  decimal.Decimal `json:"penalty" validate:"gte=0"`
}

func (h *SettingsHandler) UpdateRates(c echo.Context) error {
	var req updateRatesReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	if err := h.uc.UpdateRates(c.Request().Context(), req.Interest, req.Penalty); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type addUserReq struct {
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (h *SettingsHandler) AddUser(c echo.Context) error {
	var req addUserReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	if err := h.uc.AddUser(c.Request().Context(), req.Password, req.IsAdmin); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *SettingsHandler) DeleteUser(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user index must be numeric"})
	}
	if err := h.uc.DeleteUser(c.Request().Context(), index); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SettingsHandler) Reset(c echo.Context) error {
	if err := h.uc.ResetData(c.Request().Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
