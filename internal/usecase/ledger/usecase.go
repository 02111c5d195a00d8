// Package ledger holds the live ledger and every mutation against it.
// Each mutation runs the save path: write the durable cache (must
// succeed), then push the whole document to the remote store
// best-effort. A failed push is logged and never rolls anything back.
package ledger

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "lendingbook/internal/domain/ledger"
	"lendingbook/pkg/id"
)

var hundred = decimal.NewFromInt(100)

type Usecase struct {
	mu     sync.Mutex
	ledger *domain.Ledger
	cache  domain.SnapshotCache
	remote domain.RemoteStore

	allowOverpayment bool
}

func NewUsecase(l *domain.Ledger, cache domain.SnapshotCache, remote domain.RemoteStore, allowOverpayment bool) *Usecase {
	return &Usecase{ledger: l, cache: cache, remote: remote, allowOverpayment: allowOverpayment}
}

// saveLocked mirrors the live ledger into the durable cache and hands
// back a snapshot for the remote push. Callers hold u.mu.
func (u *Usecase) saveLocked(ctx context.Context) (*domain.Ledger, error) {
	if err := u.cache.Save(ctx, u.ledger); err != nil {
		return nil, err
	}
	return u.ledger.Clone(), nil
}

// pushSnapshot is the best-effort half of the save path. Runs outside
// the lock; the remote may lag or diverge until the next push lands.
func (u *Usecase) pushSnapshot(ctx context.Context, snap *domain.Ledger) {
	if err := u.remote.Push(ctx, snap); err != nil {
		log.Printf("remote push failed, local save only: %v", err)
	}
}

// Save re-runs the save path with no mutation. Pushing the same state
// twice is harmless: the document is overwritten wholesale either way.
func (u *Usecase) Save(ctx context.Context) error {
	u.mu.Lock()
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

// ---- borrowers ----

func (u *Usecase) AddBorrower(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: borrower name is required", domain.ErrValidation)
	}

	u.mu.Lock()
	u.ledger.Borrowers = append(u.ledger.Borrowers, domain.Borrower{
		Name:   name,
		Status: domain.BorrowerActive,
	})
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

// ToggleBorrower flips active<->blocked and returns the new status.
func (u *Usecase) ToggleBorrower(ctx context.Context, name string) (domain.BorrowerStatus, error) {
	u.mu.Lock()
	b := u.ledger.FindBorrower(name)
	if b == nil {
		u.mu.Unlock()
		return "", fmt.Errorf("%w: borrower %q", domain.ErrNotFound, name)
	}
	if b.Status == domain.BorrowerActive {
		b.Status = domain.BorrowerBlocked
	} else {
		b.Status = domain.BorrowerActive
	}
	status := b.Status
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return "", err
	}
	u.pushSnapshot(ctx, snap)
	return status, nil
}

func (u *Usecase) Borrowers() []domain.Borrower {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.Borrower, len(u.ledger.Borrowers))
	copy(out, u.ledger.Borrowers)
	return out
}

// ActiveBorrowers is the selection list loan creation draws from;
// blocked borrowers never appear in it.
func (u *Usecase) ActiveBorrowers() []domain.Borrower {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.Borrower, 0, len(u.ledger.Borrowers))
	for _, b := range u.ledger.Borrowers {
		if b.Status == domain.BorrowerActive {
			out = append(out, b)
		}
	}
	return out
}

// ---- loans ----

func (u *Usecase) CreateLoan(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if strings.TrimSpace(in.Borrower) == "" {
		return nil, fmt.Errorf("%w: borrower is required", domain.ErrValidation)
	}
	if in.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	loanType := in.Type
	if loanType == "" {
		loanType = "Cash"
	}

	u.mu.Lock()
	b := u.ledger.FindBorrower(in.Borrower)
	if b == nil {
		u.mu.Unlock()
		return nil, fmt.Errorf("%w: borrower %q", domain.ErrNotFound, in.Borrower)
	}
	if b.Status != domain.BorrowerActive {
		u.mu.Unlock()
		return nil, fmt.Errorf("%w: borrower %q is blocked", domain.ErrValidation, in.Borrower)
	}

	// Interest is frozen at creation from the rate in force right now;
	// later rate edits never touch existing loans.
	interest := in.Amount.Mul(u.ledger.Settings.InterestRate).Div(hundred)
	l := domain.Loan{
		ID:        id.NewLoanID(),
		Borrower:  in.Borrower,
		Principal: in.Amount,
		Interest:  interest,
		Penalty:   decimal.Zero,
		Balance:   in.Amount.Add(interest),
		Status:    domain.LoanActive,
		Type:      loanType,
		Payments:  []domain.Payment{},
		Date:      date,
	}
	u.ledger.Loans = append(u.ledger.Loans, l)
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return nil, err
	}
	u.pushSnapshot(ctx, snap)
	return toLoanDTO(&l), nil
}

func (u *Usecase) GetLoan(loanID int64) (*LoanDTO, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	l := u.ledger.FindLoan(loanID)
	if l == nil {
		return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, loanID)
	}
	return toLoanDTO(l), nil
}

func (u *Usecase) Loans() []LoanDTO {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]LoanDTO, 0, len(u.ledger.Loans))
	for i := range u.ledger.Loans {
		out = append(out, *toLoanDTO(&u.ledger.Loans[i]))
	}
	return out
}

// OpenLoans lists loans still accepting payments.
func (u *Usecase) OpenLoans() []LoanDTO {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]LoanDTO, 0, len(u.ledger.Loans))
	for i := range u.ledger.Loans {
		if u.ledger.Loans[i].Status == domain.LoanActive {
			out = append(out, *toLoanDTO(&u.ledger.Loans[i]))
		}
	}
	return out
}

// ---- payments ----

func (u *Usecase) RecordPayment(ctx context.Context, in RecordPaymentInput) (*LoanDTO, error) {
	if in.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	u.mu.Lock()
	l := u.ledger.FindLoan(in.LoanID)
	if l == nil {
		u.mu.Unlock()
		return nil, fmt.Errorf("%w: loan %d", domain.ErrNotFound, in.LoanID)
	}
	if !u.allowOverpayment && l.Status == domain.LoanPaid {
		u.mu.Unlock()
		return nil, fmt.Errorf("%w: loan %d is already paid", domain.ErrValidation, in.LoanID)
	}

	l.Payments = append(l.Payments, domain.Payment{Amount: in.Amount, Date: date})
	l.Balance = l.Balance.Sub(in.Amount)
	// Flips once at the crossing payment; the stored balance is not
	// clamped back to zero and the status never reverts.
	if l.Balance.Sign() <= 0 {
		l.Status = domain.LoanPaid
	}
	dto := toLoanDTO(l)
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return nil, err
	}
	u.pushSnapshot(ctx, snap)
	return dto, nil
}

// ---- settings ----

func (u *Usecase) ChangePassword(ctx context.Context, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	u.mu.Lock()
	u.ledger.Settings.Password = newPassword
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

// UpdateRates sets the interest and penalty percentages. Existing
// loans keep the interest frozen at their creation; the penalty rate
// is stored but nothing accrues from it.
func (u *Usecase) UpdateRates(ctx context.Context, interest, penalty decimal.Decimal) error {
	if interest.Sign() < 0 || penalty.Sign() < 0 {
		return fmt.Errorf("%w: rates must not be negative", domain.ErrValidation)
	}

	u.mu.Lock()
	u.ledger.Settings.InterestRate = interest
	u.ledger.Settings.PenaltyRate = penalty
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

func (u *Usecase) AddUser(ctx context.Context, password string, isAdmin bool) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return fmt.Errorf("%w: user password is required", domain.ErrValidation)
	}

	u.mu.Lock()
	for _, usr := range u.ledger.Settings.Users {
		if usr.Password == password {
			u.mu.Unlock()
			return fmt.Errorf("%w: password already exists", domain.ErrValidation)
		}
	}
	u.ledger.Settings.Users = append(u.ledger.Settings.Users, domain.User{Password: password, IsAdmin: isAdmin})
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

func (u *Usecase) DeleteUser(ctx context.Context, index int) error {
	u.mu.Lock()
	users := u.ledger.Settings.Users
	if index < 0 || index >= len(users) {
		u.mu.Unlock()
		return fmt.Errorf("%w: user %d", domain.ErrNotFound, index)
	}
	u.ledger.Settings.Users = append(users[:index], users[index+1:]...)
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

// ResetData clears borrowers, loans and the login log. Settings stay.
func (u *Usecase) ResetData(ctx context.Context) error {
	u.mu.Lock()
	u.ledger.Borrowers = []domain.Borrower{}
	u.ledger.Loans = []domain.Loan{}
	u.ledger.Logs = []domain.LoginEvent{}
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	u.pushSnapshot(ctx, snap)
	return nil
}

// ---- auth ----

// Login checks the credential against the settings password (Admin)
// and then every user password (User). Only successful attempts reach
// the log, matching the presentation contract; the raw credential is
// recorded as-is.
func (u *Usecase) Login(ctx context.Context, password string) (domain.Role, error) {
	u.mu.Lock()
	role, ok := u.classify(password)
	if !ok {
		u.mu.Unlock()
		return "", domain.ErrAccessDenied
	}
	u.ledger.Logs = append(u.ledger.Logs, domain.LoginEvent{
		Role:     role,
		Password: password,
		Time:     time.Now().UTC().Format(time.RFC3339),
	})
	snap, err := u.saveLocked(ctx)
	u.mu.Unlock()
	if err != nil {
		return "", err
	}
	u.pushSnapshot(ctx, snap)
	return role, nil
}

func (u *Usecase) classify(password string) (domain.Role, bool) {
	if password == u.ledger.Settings.Password {
		return domain.RoleAdmin, true
	}
	for _, usr := range u.ledger.Settings.Users {
		if usr.Password == password {
			return domain.RoleUser, true
		}
	}
	return "", false
}

// Logout exists to complete the presentation contract; no core state
// changes on logout.
func (u *Usecase) Logout() {}

// VerifyAdmin gates the settings surface: the shared password or any
// admin user's password passes.
func (u *Usecase) VerifyAdmin(password string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if password == u.ledger.Settings.Password {
		return nil
	}
	for _, usr := range u.ledger.Settings.Users {
		if usr.IsAdmin && usr.Password == password {
			return nil
		}
	}
	return domain.ErrAccessDenied
}

// ---- reads ----

func (u *Usecase) Logs() []domain.LoginEvent {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]domain.LoginEvent, len(u.ledger.Logs))
	copy(out, u.ledger.Logs)
	return out
}

func (u *Usecase) Settings() domain.Settings {
	u.mu.Lock()
	defer u.mu.Unlock()
	s := u.ledger.Settings
	s.Users = make([]domain.User, len(u.ledger.Settings.Users))
	copy(s.Users, u.ledger.Settings.Users)
	return s
}

// Snapshot returns a deep copy of the whole ledger for rendering.
func (u *Usecase) Snapshot() *domain.Ledger {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.ledger.Clone()
}

func (u *Usecase) Summary() SummaryDTO {
	u.mu.Lock()
	defer u.mu.Unlock()
	lent, collected, outstanding := decimal.Zero, decimal.Zero, decimal.Zero
	for i := range u.ledger.Loans {
		l := &u.ledger.Loans[i]
		lent = lent.Add(l.Principal)
		outstanding = outstanding.Add(l.Balance)
		for _, p := range l.Payments {
			collected = collected.Add(p.Amount)
		}
	}
	return SummaryDTO{
		Lent:        lent,
		Collected:   collected,
		Outstanding: outstanding,
		Profit:      collected.Sub(lent),
	}
}
