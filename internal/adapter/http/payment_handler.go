package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

type PaymentHandler struct{ uc *ledgeruc.Usecase }

func NewPaymentHandler(uc *ledgeruc.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	LoanID int64           `json:"loan_id" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Date   time.Time       `json:"date"`
}

func (h *PaymentHandler) Record(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), ledgeruc.RecordPaymentInput{
		LoanID: req.LoanID,
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
