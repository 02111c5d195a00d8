package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	ledgeruc "lendingbook/internal/usecase/ledger"
)

type LoanHandler struct{ uc *ledgeruc.Usecase }

func NewLoanHandler(uc *ledgeruc.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Borrower string          `json:"borrower" validate:"required"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
	Date     time.Time       `json:"date"`
}

func (h *LoanHandler) Create(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}
	dto, err := h.uc.CreateLoan(c.Request().Context(), ledgeruc.CreateLoanInput{
		Borrower: req.Borrower,
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID, err := strconv.ParseInt(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "loan id must be numeric"})
	}
	dto, err := h.uc.GetLoan(loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List returns every loan, or only the still-open ones with ?status=active.
func (h *LoanHandler) List(c echo.Context) error {
	if c.QueryParam("status") == "active" {
		return c.JSON(http.StatusOK, h.uc.OpenLoans())
	}
	return c.JSON(http.StatusOK, h.uc.Loans())
}
