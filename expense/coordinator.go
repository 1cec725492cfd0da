package expense

import (
	"context"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"my-expenses-backend/domain"
	"my-expenses-backend/wallet"
)

// Coordinator links an expense record's lifecycle to the owning wallet's
// balance and ledger: a successful create debits exactly the expense
// amount, an update moves the balance by exactly the signed difference and
// a delete refunds exactly what the expense consumed. Validation and the
// balance sufficiency check always complete before either record is
// mutated.
//
// The underlying store only guarantees atomic writes per document, so the
// wallet and expense writes form a best-effort unit: the wallet write
// lands first on create/update and second on delete, and a failing second
// write triggers a compensating ledger entry (or, for delete, a loud error
// log carrying what is needed to repair the ledger). The per-user lock is
// held for the whole read-modify-write cycle.
type Coordinator struct {
	expenses Store
	wallets  wallet.Store
	locks    *wallet.UserLock
	logger   *zap.Logger
	now      func() time.Time
}

func NewCoordinator(expenses Store, wallets wallet.Store, locks *wallet.UserLock, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		expenses: expenses,
		wallets:  wallets,
		locks:    locks,
		logger:   logger,
		now:      time.Now,
	}
}

const dateLayout = "2006-01-02"

func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ErrValidation{Field: "date", Message: "must be YYYY-MM-DD"}
	}
	return d, nil
}

func validateAmount(amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return &domain.ErrValidation{Field: "amount", Message: "must be a positive number"}
	}
	return nil
}

// Create validates the request, checks the wallet balance and then applies
// the expense insert and the wallet debit as a unit.
func (co *Coordinator) Create(ctx context.Context, userID string, req CreateExpenseRequest) (*CreateExpenseResponse, error) {
	if err := validateAmount(req.Amount); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "is required"}
	}
	if !ValidCategory(req.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "must be one of " + strings.Join(Categories, ", ")}
	}

	now := co.now()
	date, err := parseDate(req.Date, now)
	if err != nil {
		return nil, err
	}

	unlock := co.locks.Lock(userID)
	defer unlock()

	w, err := co.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := w.Debit(req.Amount, "Expense: "+description, now); err != nil {
		return nil, err
	}
	w.RecordSpend(req.Amount, now)
	w.UpdatedAt = now
	if err := co.wallets.Save(ctx, w); err != nil {
		return nil, err
	}

	exp := &Expense{
		ID:          primitive.NewObjectID().Hex(),
		UserID:      userID,
		Amount:      req.Amount,
		Description: description,
		Category:    req.Category,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := co.expenses.Insert(ctx, exp); err != nil {
		w.ReverseSpend(req.Amount, now)
		co.compensate(ctx, w, req.Amount, "Reversal: "+description, err)
		return nil, err
	}

	return &CreateExpenseResponse{
		Expense:       exp,
		WalletBalance: w.CurrentBalance,
		Transactions:  w.Transactions,
	}, nil
}

// Update applies a partial patch. The wallet moves by the signed difference
// between the new and old amounts; a grown expense is subject to the same
// sufficiency check as a create.
func (co *Coordinator) Update(ctx context.Context, userID, expenseID string, req UpdateExpenseRequest) (*UpdateExpenseResponse, error) {
	description := ""
	if req.Description != "" {
		description = strings.TrimSpace(req.Description)
		if description == "" {
			return nil, &domain.ErrValidation{Field: "description", Message: "must not be blank"}
		}
	}
	if req.Category != "" && !ValidCategory(req.Category) {
		return nil, &domain.ErrValidation{Field: "category", Message: "must be one of " + strings.Join(Categories, ", ")}
	}
	if req.Amount != 0 {
		if err := validateAmount(req.Amount); err != nil {
			return nil, err
		}
	}
	patchDate := time.Time{}
	if req.Date != "" {
		d, err := parseDate(req.Date, time.Time{})
		if err != nil {
			return nil, err
		}
		patchDate = d
	}

	unlock := co.locks.Lock(userID)
	defer unlock()

	exp, err := co.expenses.Get(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	w, err := co.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := co.now()
	delta := 0.0
	if req.Amount != 0 {
		delta = req.Amount - exp.Amount
	}

	if delta > 0 {
		if err := w.Debit(delta, "Expense update: "+exp.Description, now); err != nil {
			return nil, err
		}
	} else if delta < 0 {
		w.Credit(-delta, "Expense update: "+exp.Description, now)
	}
	if delta != 0 {
		w.UpdatedAt = now
		if err := co.wallets.Save(ctx, w); err != nil {
			return nil, err
		}
	}

	if req.Amount != 0 {
		exp.Amount = req.Amount
	}
	if description != "" {
		exp.Description = description
	}
	if req.Category != "" {
		exp.Category = req.Category
	}
	if !patchDate.IsZero() {
		exp.Date = patchDate
	}
	exp.UpdatedAt = now

	if err := co.expenses.Update(ctx, exp); err != nil {
		if delta > 0 {
			co.compensate(ctx, w, delta, "Reversal: "+exp.Description, err)
		} else if delta < 0 {
			co.recoup(ctx, w, -delta, "Reversal: "+exp.Description, err)
		}
		return nil, err
	}

	return &UpdateExpenseResponse{
		Expense:       exp,
		WalletBalance: w.CurrentBalance,
		Transactions:  w.Transactions,
	}, nil
}

// Delete removes the expense and refunds its full amount. If the wallet is
// missing the whole operation fails; the expense is never deleted without
// its refund.
func (co *Coordinator) Delete(ctx context.Context, userID, expenseID string) (*DeleteExpenseResponse, error) {
	unlock := co.locks.Lock(userID)
	defer unlock()

	exp, err := co.expenses.Get(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	w, err := co.wallets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := co.expenses.Delete(ctx, userID, expenseID); err != nil {
		return nil, err
	}

	now := co.now()
	w.Credit(exp.Amount, "Refund: "+exp.Description+" (Deleted)", now)
	w.UpdatedAt = now
	if err := co.wallets.Save(ctx, w); err != nil {
		// The expense is gone but its refund did not land. Log everything
		// needed to repair the ledger and surface the failure.
		co.logger.Error("refund not persisted after expense delete",
			zap.String("user_id", userID),
			zap.String("expense_id", expenseID),
			zap.Float64("amount", exp.Amount),
			zap.Error(err),
		)
		return nil, err
	}

	return &DeleteExpenseResponse{
		Message:        "Expense deleted successfully",
		CurrentBalance: w.CurrentBalance,
		Transactions:   w.Transactions,
	}, nil
}

// Get returns a single expense owned by the user.
func (co *Coordinator) Get(ctx context.Context, userID, expenseID string) (*Expense, error) {
	return co.expenses.Get(ctx, userID, expenseID)
}

// Time-window filters for List.
const (
	FilterToday = "today"
	FilterWeek  = "week"
	FilterMonth = "month"
)

// ListParams narrows and orders the expense listing.
type ListParams struct {
	Filter   string // today|week|month, empty for all
	SortBy   string // date|amount|category
	Category string
}

// List returns the user's expenses, optionally narrowed to a time window.
// "today" is the current calendar day, "week" the trailing seven days and
// "month" the current calendar month.
func (co *Coordinator) List(ctx context.Context, userID string, params ListParams) ([]Expense, error) {
	q := ListQuery{Category: params.Category, SortBy: params.SortBy}

	now := co.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch params.Filter {
	case FilterToday:
		q.From = startOfDay
		q.To = startOfDay.AddDate(0, 0, 1)
	case FilterWeek:
		q.From = startOfDay.AddDate(0, 0, -6)
		q.To = startOfDay.AddDate(0, 0, 1)
	case FilterMonth:
		q.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		q.To = q.From.AddDate(0, 1, 0)
	case "":
	default:
		return nil, &domain.ErrValidation{Field: "filter", Message: "must be today, week or month"}
	}

	return co.expenses.List(ctx, userID, q)
}

// compensate credits back a debit whose paired expense write failed.
func (co *Coordinator) compensate(ctx context.Context, w *wallet.Wallet, amount float64, description string, cause error) {
	co.logger.Error("expense write failed after wallet debit, crediting back",
		zap.String("user_id", w.UserID),
		zap.Float64("amount", amount),
		zap.Error(cause),
	)
	w.Credit(amount, description, co.now())
	if err := co.wallets.Save(ctx, w); err != nil {
		co.logger.Error("compensating credit not persisted, ledger needs repair",
			zap.String("user_id", w.UserID),
			zap.Float64("amount", amount),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}

// recoup debits back a credit whose paired expense write failed. The
// preceding credit guarantees the balance covers the debit.
func (co *Coordinator) recoup(ctx context.Context, w *wallet.Wallet, amount float64, description string, cause error) {
	co.logger.Error("expense write failed after wallet credit, debiting back",
		zap.String("user_id", w.UserID),
		zap.Float64("amount", amount),
		zap.Error(cause),
	)
	if err := w.Debit(amount, description, co.now()); err != nil {
		co.logger.Error("compensating debit rejected, ledger needs repair",
			zap.String("user_id", w.UserID),
			zap.Float64("amount", amount),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return
	}
	if err := co.wallets.Save(ctx, w); err != nil {
		co.logger.Error("compensating debit not persisted, ledger needs repair",
			zap.String("user_id", w.UserID),
			zap.Float64("amount", amount),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
	}
}
