package ledger

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
)

type BorrowerStatus string

const (
	BorrowerActive  BorrowerStatus = "active"
	BorrowerBlocked BorrowerStatus = "blocked"
)

type LoanStatus string

const (
	LoanActive LoanStatus = "active"
	LoanPaid   LoanStatus = "paid"
)

// Role classifies a login against the settings password at the moment
// of the attempt.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Ledger is the single authoritative record: everything the system
// knows lives here, and the whole struct is what gets serialized into
// the cache slot and the remote document.
type Ledger struct {
	Borrowers []Borrower   `json:"borrowers"`
	Loans     []Loan       `json:"loans"`
	Logs      []LoginEvent `json:"logs"`
	Settings  Settings     `json:"settings"`
}

type Borrower struct {
	Name   string         `json:"name"`
	Status BorrowerStatus `json:"status"`
}

type Loan struct {
	// Millisecond timestamp taken at creation; unique and strictly
	// increasing in creation order.
	ID        int64           `json:"id"`
	Borrower  string          `json:"borrower"`
	Principal decimal.Decimal `json:"principal"`
	// Frozen at creation from the interest rate in force at that time.
	Interest decimal.Decimal `json:"interest"`
	// Reserved. Nothing accrues into it today.
	Penalty  decimal.Decimal `json:"penalty"`
	Balance  decimal.Decimal `json:"balance"`
	Status   LoanStatus      `json:"status"`
	Type     string          `json:"type"`
	Payments []Payment       `json:"payments"`
	Date     time.Time       `json:"date"`
}

// Payment is immutable once appended; there is no edit or delete.
type Payment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

type Settings struct {
	Password     string          `json:"password"`
	Users        []User          `json:"users"`
	InterestRate decimal.Decimal `json:"interest"`
	PenaltyRate  decimal.Decimal `json:"penalty"`
}

type User struct {
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginEvent struct {
	Role     Role   `json:"role"`
	Password string `json:"password"`
	Time     string `json:"time"`
}

const (
	DefaultPassword = "1234"
)

// Default returns the ledger installed when neither the remote store
// nor the local cache has anything: empty data, default credentials,
// 10% interest, no penalty.
func Default() *Ledger {
	return &Ledger{
		Borrowers: []Borrower{},
		Loans:     []Loan{},
		Logs:      []LoginEvent{},
		Settings: Settings{
			Password:     DefaultPassword,
			Users:        []User{},
			InterestRate: decimal.NewFromInt(10),
			PenaltyRate:  decimal.Zero,
		},
	}
}

// Clone returns a deep copy via a JSON round trip. Snapshots handed to
// callers or pushed to the remote must not alias the live ledger.
func (l *Ledger) Clone() *Ledger {
	raw, err := json.Marshal(l)
	if err != nil {
		// Ledger contains only marshalable fields.
		panic(err)
	}
	var out Ledger
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

// FindBorrower returns a pointer into the live slice, or nil.
func (l *Ledger) FindBorrower(name string) *Borrower {
	for i := range l.Borrowers {
		if l.Borrowers[i].Name == name {
			return &l.Borrowers[i]
		}
	}
	return nil
}

// FindLoan returns a pointer into the live slice, or nil.
func (l *Ledger) FindLoan(id int64) *Loan {
	for i := range l.Loans {
		if l.Loans[i].ID == id {
			return &l.Loans[i]
		}
	}
	return nil
}
