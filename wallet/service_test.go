package wallet

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"my-expenses-backend/domain"
)

func testService(t *testing.T) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	svc := NewService(store, NewUserLock(), zap.NewNop())
	svc.now = func() time.Time { return march15 }
	return svc, store
}

func TestInitializeCreatesWalletOnce(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	w, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, w.CurrentBalance)
	assert.Equal(t, 0.0, w.MonthlyBudget)
	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, "March 2025", w.MonthlyExpenses[0].Month)

	// Second call is a no-op returning the same wallet.
	again, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, w.ID, again.ID)
	assert.Len(t, again.MonthlyExpenses, 1)
}

func TestAddFunds(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)

	w, err := svc.AddFunds(ctx, "u1", 100, "")
	require.NoError(t, err)

	assert.Equal(t, 100.0, w.CurrentBalance)
	require.Len(t, w.Transactions, 1)
	assert.Equal(t, KindCredit, w.Transactions[0].Kind)
	assert.Equal(t, 100.0, w.Transactions[0].Amount)
	assert.Equal(t, "Added funds", w.Transactions[0].Description)
}

func TestAddFundsRejectsBadAmounts(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := svc.AddFunds(ctx, "u1", amount, "")
		var validation *domain.ErrValidation
		require.ErrorAs(t, err, &validation)
	}
}

func TestDeductFunds(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.AddFunds(ctx, "u1", 100, "")
	require.NoError(t, err)

	w, err := svc.DeductFunds(ctx, "u1", 40, "")
	require.NoError(t, err)

	assert.Equal(t, 60.0, w.CurrentBalance)
	last := w.Transactions[len(w.Transactions)-1]
	assert.Equal(t, KindDebit, last.Kind)
	assert.Equal(t, "Expense deduction", last.Description)

	// The debit accrues into the current month's rollup.
	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, 40.0, w.MonthlyExpenses[0].Spent)
}

func TestDeductFundsInsufficientBalance(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.AddFunds(ctx, "u1", 10, "")
	require.NoError(t, err)

	_, err = svc.DeductFunds(ctx, "u1", 15, "")
	var insufficient *domain.ErrInsufficientBalance
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 10.0, insufficient.Available)
	assert.Equal(t, 15.0, insufficient.Required)

	// Nothing was persisted.
	w, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, w.CurrentBalance)
	assert.Len(t, w.Transactions, 1)
}

func TestSetMonthlyBudgetAppendsLedgerEntry(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)

	w, err := svc.SetMonthlyBudget(ctx, "u1", 500)
	require.NoError(t, err)

	assert.Equal(t, 500.0, w.MonthlyBudget)
	require.Len(t, w.Transactions, 1)
	assert.Equal(t, KindBudgetSet, w.Transactions[0].Kind)

	stats, err := svc.MonthlyStats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, stats.MonthlyBudget)
	assert.Equal(t, 500.0, stats.Remaining)
}

func TestMonthlyStatsNoWallet(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.MonthlyStats(context.Background(), "ghost")
	var notFound *domain.ErrNotFound
	require.ErrorAs(t, err, &notFound)
}

func TestSpendingAlertsNoWallet(t *testing.T) {
	svc, _ := testService(t)

	alerts, err := svc.SpendingAlerts(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, alerts, "a user without a wallet gets no alerts, not an error")
}

func TestTransactionsNewestFirst(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	_, err := svc.Initialize(ctx, "u1")
	require.NoError(t, err)

	times := []time.Time{
		march15,
		march15.Add(time.Hour),
		march15.Add(2 * time.Hour),
	}
	i := 0
	svc.now = func() time.Time { at := times[i]; i++; return at }

	_, err = svc.AddFunds(ctx, "u1", 100, "first")
	require.NoError(t, err)
	_, err = svc.AddFunds(ctx, "u1", 50, "second")
	require.NoError(t, err)
	_, err = svc.AddFunds(ctx, "u1", 25, "third")
	require.NoError(t, err)

	entries, err := svc.Transactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Description)
	assert.Equal(t, "second", entries[1].Description)
	assert.Equal(t, "first", entries[2].Description)
}
