package wallet

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"my-expenses-backend/domain"
)

// Service implements the wallet operations. Every mutation holds the owning
// user's lock for its full read-modify-write cycle so balance checks stay
// valid until the save lands.
type Service struct {
	store  Store
	locks  *UserLock
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, locks *UserLock, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		locks:  locks,
		logger: logger,
		now:    time.Now,
	}
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

// Initialize creates the user's wallet if it does not exist yet, seeding
// the current month's rollup. Calling it again returns the existing wallet
// untouched.
func (s *Service) Initialize(ctx context.Context, userID string) (*Wallet, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.store.Get(ctx, userID)
	if err == nil {
		return w, nil
	}
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		return nil, err
	}

	now := s.now()
	w = &Wallet{
		UserID:         userID,
		CurrentBalance: 0,
		MonthlyBudget:  0,
		MonthlyExpenses: []MonthlyExpense{{
			Month:  MonthLabel(now),
			Year:   now.Year(),
			Spent:  0,
			Budget: 0,
		}},
		Transactions: []LedgerEntry{},
		Categories:   []CategoryBudget{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("wallet initialized", zap.String("user_id", userID))
	return w, nil
}

// Details returns the user's wallet.
func (s *Service) Details(ctx context.Context, userID string) (*Wallet, error) {
	return s.store.Get(ctx, userID)
}

// AddFunds credits the wallet and appends a CREDIT ledger entry.
func (s *Service) AddFunds(ctx context.Context, userID string, amount float64, description string) (*Wallet, error) {
	if !validAmount(amount) {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be a positive number"}
	}
	if description == "" {
		description = "Added funds"
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	w.Credit(amount, description, now)
	w.UpdatedAt = now
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// DeductFunds debits the wallet, subject to the balance sufficiency check.
// The debit accrues into the current month's spend rollup.
func (s *Service) DeductFunds(ctx context.Context, userID string, amount float64, description string) (*Wallet, error) {
	if !validAmount(amount) {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be a positive number"}
	}
	if description == "" {
		description = "Expense deduction"
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := w.Debit(amount, description, now); err != nil {
		return nil, err
	}
	w.RecordSpend(amount, now)
	w.UpdatedAt = now
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SetMonthlyBudget updates the budget, the current month's rollup and the
// ledger in one write.
func (s *Service) SetMonthlyBudget(ctx context.Context, userID string, amount float64) (*Wallet, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be a non-negative number"}
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	w.ApplyBudget(amount, now)
	w.UpdatedAt = now
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// MonthlyStats returns the current month's snapshot.
func (s *Service) MonthlyStats(ctx context.Context, userID string) (*MonthlyStats, error) {
	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := w.Stats(s.now())
	return &stats, nil
}

// SetCategoryLimit upserts a per-category budget limit.
func (s *Service) SetCategoryLimit(ctx context.Context, userID, category string, limit float64) (*Wallet, error) {
	if limit < 0 || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return nil, &domain.ErrValidation{Field: "limit", Message: "must be a non-negative number"}
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	w.SetCategoryLimit(category, limit)
	w.UpdatedAt = s.now()
	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SpendingAlerts evaluates spending-rate and category-limit alerts. A user
// without a wallet gets an empty list, not an error.
func (s *Service) SpendingAlerts(ctx context.Context, userID string) ([]Alert, error) {
	w, err := s.store.Get(ctx, userID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return []Alert{}, nil
		}
		return nil, err
	}

	now := s.now()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	return w.EvaluateAlerts(now.Day(), daysInMonth), nil
}

// Transactions returns the ledger, newest first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]LedgerEntry, error) {
	w, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := append([]LedgerEntry(nil), w.Transactions...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	return entries, nil
}
