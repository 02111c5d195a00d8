package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

// LedgerHandler exposes the read side the presentation layer re-renders
// from after every mutation.
type LedgerHandler struct{ uc *ledgeruc.Usecase }

func NewLedgerHandler(uc *ledgeruc.Usecase) *LedgerHandler { return &LedgerHandler{uc: uc} }

func (h *LedgerHandler) Snapshot(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Snapshot())
}

func (h *LedgerHandler) Summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Summary())
}

func (h *LedgerHandler) Logs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Logs())
}
