package wallet

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"my-expenses-backend/domain"
)

// MemoryStore is an in-memory Store used by tests and the local development
// backend. It hands out deep copies so callers never share wallet state
// with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	wallets map[string]*Wallet // keyed by user id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wallets: make(map[string]*Wallet)}
}

func copyWallet(w *Wallet) *Wallet {
	c := *w
	c.MonthlyExpenses = append([]MonthlyExpense(nil), w.MonthlyExpenses...)
	c.Transactions = append([]LedgerEntry(nil), w.Transactions...)
	c.Categories = append([]CategoryBudget(nil), w.Categories...)
	return &c
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "wallet", ID: userID}
	}
	return copyWallet(w), nil
}

func (s *MemoryStore) Create(ctx context.Context, w *Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[w.UserID]; ok {
		return &domain.ErrConflict{Message: "wallet already exists for user " + w.UserID}
	}
	if w.ID == "" {
		w.ID = primitive.NewObjectID().Hex()
	}
	s.wallets[w.UserID] = copyWallet(w)
	return nil
}

func (s *MemoryStore) Save(ctx context.Context, w *Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.wallets[w.UserID]; !ok {
		return &domain.ErrNotFound{Resource: "wallet", ID: w.UserID}
	}
	s.wallets[w.UserID] = copyWallet(w)
	return nil
}
