package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	domain "lendingbook/internal/domain/ledger"
)

type CreateLoanInput struct {
	Borrower string          `json:"borrower"`
	Type     string          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	// Zero means "now".
	Date time.Time `json:"date"`
}

type RecordPaymentInput struct {
	LoanID int64           `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

type LoanDTO struct {
	ID        int64            `json:"id"`
	Borrower  string           `json:"borrower"`
	Principal decimal.Decimal  `json:"principal"`
	Interest  decimal.Decimal  `json:"interest"`
	Penalty   decimal.Decimal  `json:"penalty"`
	Balance   decimal.Decimal  `json:"balance"`
	Status    string           `json:"status"`
	Type      string           `json:"type"`
	Payments  []domain.Payment `json:"payments"`
	Date      time.Time        `json:"date"`
}

type SummaryDTO struct {
	Lent        decimal.Decimal `json:"lent"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Profit      decimal.Decimal `json:"profit"`
}

func toLoanDTO(l *domain.Loan) *LoanDTO {
	payments := make([]domain.Payment, len(l.Payments))
	copy(payments, l.Payments)
	return &LoanDTO{
		ID:        l.ID,
		Borrower:  l.Borrower,
		Principal: l.Principal,
		Interest:  l.Interest,
		Penalty:   l.Penalty,
		Balance:   l.Balance,
		Status:    string(l.Status),
		Type:      l.Type,
		Payments:  payments,
		Date:      l.Date,
	}
}
