package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDefault(t *testing.T) {
	l := Default()
	if len(l.Borrowers) != 0 || len(l.Loans) != 0 || len(l.Logs) != 0 {
		t.Fatalf("default ledger not empty: %+v", l)
	}
	if l.Settings.Password != DefaultPassword {
		t.Fatalf("password = %q, want %q", l.Settings.Password, DefaultPassword)
	}
	if !l.Settings.InterestRate.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("interest rate = %s, want 10", l.Settings.InterestRate)
	}
	if !l.Settings.PenaltyRate.IsZero() {
		t.Fatalf("penalty rate = %s, want 0", l.Settings.PenaltyRate)
	}
}

func TestClone_Independent(t *testing.T) {
	l := Default()
	l.Borrowers = append(l.Borrowers, Borrower{Name: "Maria", Status: BorrowerActive})
	l.Loans = append(l.Loans, Loan{
		ID:        1700000000000,
		Borrower:  "Maria",
		Principal: decimal.NewFromInt(1000),
		Interest:  decimal.NewFromInt(100),
		Penalty:   decimal.Zero,
		Balance:   decimal.NewFromInt(1100),
		Status:    LoanActive,
		Type:      "Cash",
		Payments:  []Payment{},
		Date:      time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	c := l.Clone()
	c.Borrowers[0].Status = BorrowerBlocked
	c.Loans[0].Balance = decimal.Zero
	c.Loans[0].Payments = append(c.Loans[0].Payments, Payment{Amount: decimal.NewFromInt(1100), Date: time.Now()})

	if l.Borrowers[0].Status != BorrowerActive {
		t.Fatal("clone aliases borrowers")
	}
	if !l.Loans[0].Balance.Equal(decimal.NewFromInt(1100)) {
		t.Fatal("clone aliases loans")
	}
	if len(l.Loans[0].Payments) != 0 {
		t.Fatal("clone aliases payments")
	}
}

func TestFindBorrowerAndLoan(t *testing.T) {
	l := Default()
	l.Borrowers = append(l.Borrowers, Borrower{Name: "Ana", Status: BorrowerActive})
	l.Loans = append(l.Loans, Loan{ID: 42, Borrower: "Ana"})

	if b := l.FindBorrower("Ana"); b == nil || b.Name != "Ana" {
		t.Fatalf("FindBorrower = %+v", b)
	}
	if b := l.FindBorrower("nobody"); b != nil {
		t.Fatalf("FindBorrower(nobody) = %+v, want nil", b)
	}

	ln := l.FindLoan(42)
	if ln == nil || ln.Borrower != "Ana" {
		t.Fatalf("FindLoan = %+v", ln)
	}
	// Returned pointer must address the live slice.
	ln.Status = LoanPaid
	if l.Loans[0].Status != LoanPaid {
		t.Fatal("FindLoan returned a copy")
	}
	if l.FindLoan(7) != nil {
		t.Fatal("FindLoan(7) should be nil")
	}
}
