package wallet

import (
	"time"

	"my-expenses-backend/domain"
)

// Ledger entry kinds. Direction is encoded by the kind, never by the sign
// of the amount.
const (
	KindCredit    = "CREDIT"
	KindDebit     = "DEBIT"
	KindBudgetSet = "BUDGET_SET"
)

// LedgerEntry is an immutable record appended to a wallet's transaction
// history. Entries are never edited or removed after append; a later
// reversal is expressed by a new offsetting entry.
type LedgerEntry struct {
	Kind        string    `bson:"kind" json:"kind"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// MonthlyExpense is the per-calendar-month rollup of spend against the
// budget that was in effect for that month.
type MonthlyExpense struct {
	Month  string  `bson:"month" json:"month"` // e.g. "January 2006"
	Year   int     `bson:"year" json:"year"`
	Spent  float64 `bson:"spent" json:"spent"`
	Budget float64 `bson:"budget" json:"budget"`
}

// CategoryBudget tracks spend against a configured per-category limit.
type CategoryBudget struct {
	Name        string  `bson:"name" json:"name"`
	BudgetLimit float64 `bson:"budget_limit" json:"budget_limit"`
	Spent       float64 `bson:"spent" json:"spent"`
}

// Wallet is the per-user account aggregate. At most one wallet exists per
// user; it is created lazily by Initialize and never deleted.
type Wallet struct {
	ID              string           `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string           `bson:"user_id" json:"user_id"`
	CurrentBalance  float64          `bson:"current_balance" json:"current_balance"`
	MonthlyBudget   float64          `bson:"monthly_budget" json:"monthly_budget"`
	MonthlyExpenses []MonthlyExpense `bson:"monthly_expenses" json:"monthly_expenses"`
	Transactions    []LedgerEntry    `bson:"transactions" json:"transactions"`
	Categories      []CategoryBudget `bson:"categories" json:"categories"`
	CreatedAt       time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `bson:"updated_at" json:"updated_at"`
}

// MonthLabel formats the month key used by the monthlyExpenses rollup.
func MonthLabel(at time.Time) string {
	return at.Format("January 2006")
}

func (w *Wallet) appendEntry(kind string, amount float64, description string, at time.Time) {
	w.Transactions = append(w.Transactions, LedgerEntry{
		Kind:        kind,
		Amount:      amount,
		Description: description,
		Timestamp:   at,
	})
}

// Credit increases the balance and appends a CREDIT ledger entry.
func (w *Wallet) Credit(amount float64, description string, at time.Time) {
	w.CurrentBalance += amount
	w.appendEntry(KindCredit, amount, description, at)
}

// Debit decreases the balance and appends a DEBIT ledger entry. It fails
// without mutating the wallet when the balance is insufficient; the balance
// can never go negative through this path. Spend accrual into the monthly
// rollup is a separate step, RecordSpend.
func (w *Wallet) Debit(amount float64, description string, at time.Time) error {
	if w.CurrentBalance < amount {
		return &domain.ErrInsufficientBalance{Available: w.CurrentBalance, Required: amount}
	}
	w.CurrentBalance -= amount
	w.appendEntry(KindDebit, amount, description, at)
	return nil
}

type AddFundsRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

type DeductFundsRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

type SetMonthlyBudgetRequest struct {
	Amount float64 `json:"amount"`
}

type SetCategoryLimitRequest struct {
	Category string  `json:"category" binding:"required"`
	Limit    float64 `json:"limit"`
}
