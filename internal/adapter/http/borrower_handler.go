package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

type BorrowerHandler struct{ uc *ledgeruc.Usecase }

func NewBorrowerHandler(uc *ledgeruc.Usecase) *BorrowerHandler { return &BorrowerHandler{uc: uc} }

type addBorrowerReq struct {
	Name string `json:"name" validate:"required"`
}

func (h *BorrowerHandler) Add(c echo.Context) error {
	var req addBorrowerReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	if err := h.uc.AddBorrower(c.Request().Context(), req.Name); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"name": req.Name, "status": "active"})
}

// List returns all borrowers, or only the active ones with ?active=true
// (the selection list loan creation uses).
func (h *BorrowerHandler) List(c echo.Context) error {
	if c.QueryParam("active") == "true" {
		return c.JSON(http.StatusOK, h.uc.ActiveBorrowers())
	}
	return c.JSON(http.StatusOK, h.uc.Borrowers())
}

func (h *BorrowerHandler) Toggle(c echo.Context) error {
	name := c.Param("name")
	status, err := h.uc.ToggleBorrower(c.Request().Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"name": name, "status": string(status)})
}
