package expense

import (
	"context"
	"sort"
	"sync"

	"my-expenses-backend/domain"
)

// MemoryStore is an in-memory Store used by tests and the local development
// backend. Semantics mirror MongoStore, including owner scoping and sort
// orders.
type MemoryStore struct {
	mu       sync.RWMutex
	expenses map[string]Expense // keyed by expense id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expenses: make(map[string]Expense)}
}

func (s *MemoryStore) Insert(ctx context.Context, e *Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[e.ID]; ok {
		return &domain.ErrConflict{Message: "expense already exists: " + e.ID}
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID, id string) (*Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return nil, &domain.ErrNotFound{Resource: "expense", ID: id}
	}
	copy := e
	return &copy, nil
}

func (s *MemoryStore) Update(ctx context.Context, e *Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return &domain.ErrNotFound{Resource: "expense", ID: e.ID}
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.expenses[id]
	if !ok || existing.UserID != userID {
		return &domain.ErrNotFound{Resource: "expense", ID: id}
	}
	delete(s.expenses, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, userID string, q ListQuery) ([]Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Expense, 0)
	for _, e := range s.expenses {
		if e.UserID != userID {
			continue
		}
		if q.Category != "" && e.Category != q.Category {
			continue
		}
		if !q.From.IsZero() && e.Date.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !e.Date.Before(q.To) {
			continue
		}
		result = append(result, e)
	}

	switch q.SortBy {
	case SortByAmount:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Amount > result[j].Amount })
	case SortByCategory:
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].Category != result[j].Category {
				return result[i].Category < result[j].Category
			}
			return result[i].Date.After(result[j].Date)
		})
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	}
	return result, nil
}
