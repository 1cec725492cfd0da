package expense

import (
	"time"

	"my-expenses-backend/wallet"
)

// Expense categories form a fixed enumeration; "Other" is the canonical
// catch-all spelling.
const (
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryBills          = "Bills"
	CategoryOther          = "Other"
)

// Categories lists every valid expense category.
var Categories = []string{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryOther,
}

// ValidCategory reports whether name is a member of the category enumeration.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Expense is a single expense record owned by a user. Date is the day the
// expense is attributed to, distinct from the ledger entry timestamps the
// expense produces.
type Expense struct {
	ID          string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Date        time.Time `bson:"date" json:"date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateExpenseRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
}

// UpdateExpenseRequest carries a partial patch. Zero values mean the field
// is left unchanged.
type UpdateExpenseRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

// CreateExpenseResponse returns the created expense together with the
// post-mutation wallet state.
type CreateExpenseResponse struct {
	Expense       *Expense             `json:"expense"`
	WalletBalance float64              `json:"wallet_balance"`
	Transactions  []wallet.LedgerEntry `json:"transactions"`
}

type UpdateExpenseResponse struct {
	Expense       *Expense             `json:"expense"`
	WalletBalance float64              `json:"wallet_balance"`
	Transactions  []wallet.LedgerEntry `json:"transactions"`
}

type DeleteExpenseResponse struct {
	Message        string               `json:"message"`
	CurrentBalance float64              `json:"current_balance"`
	Transactions   []wallet.LedgerEntry `json:"transactions"`
}
