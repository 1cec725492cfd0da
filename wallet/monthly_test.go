package wallet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march15 = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestRecordSpendCreatesMonthRecord(t *testing.T) {
	w := &Wallet{UserID: "u1", CurrentBalance: 100, MonthlyBudget: 500}

	w.RecordSpend(30, march15)

	require.Len(t, w.MonthlyExpenses, 1)
	m := w.MonthlyExpenses[0]
	assert.Equal(t, "March 2025", m.Month)
	assert.Equal(t, 2025, m.Year)
	assert.Equal(t, 30.0, m.Spent)
	assert.Equal(t, 500.0, m.Budget, "new month record seeds the budget in effect")
}

func TestRecordSpendAccumulatesWithinMonth(t *testing.T) {
	w := &Wallet{UserID: "u1"}

	w.RecordSpend(30, march15)
	w.RecordSpend(20, march15.AddDate(0, 0, 3))

	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, 50.0, w.MonthlyExpenses[0].Spent)
}

func TestRecordSpendSeparatesMonths(t *testing.T) {
	w := &Wallet{UserID: "u1"}

	w.RecordSpend(30, march15)
	w.RecordSpend(40, march15.AddDate(0, 1, 0))

	require.Len(t, w.MonthlyExpenses, 2)
	assert.Equal(t, "March 2025", w.MonthlyExpenses[0].Month)
	assert.Equal(t, "April 2025", w.MonthlyExpenses[1].Month)
	assert.Equal(t, 30.0, w.MonthlyExpenses[0].Spent)
	assert.Equal(t, 40.0, w.MonthlyExpenses[1].Spent)
}

func TestReverseSpendBacksOutDebit(t *testing.T) {
	w := &Wallet{UserID: "u1", MonthlyBudget: 500}

	w.RecordSpend(30, march15)
	w.RecordSpend(20, march15)
	w.ReverseSpend(30, march15)

	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, 20.0, w.MonthlyExpenses[0].Spent)
}

func TestReverseSpendUnknownMonthNoop(t *testing.T) {
	w := &Wallet{UserID: "u1"}

	w.ReverseSpend(30, march15)

	assert.Empty(t, w.MonthlyExpenses)
}

func TestApplyBudgetPreservesSpent(t *testing.T) {
	w := &Wallet{UserID: "u1"}
	w.RecordSpend(120, march15)

	w.ApplyBudget(400, march15)

	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, 400.0, w.MonthlyExpenses[0].Budget)
	assert.Equal(t, 120.0, w.MonthlyExpenses[0].Spent)
	assert.Equal(t, 400.0, w.MonthlyBudget)

	require.Len(t, w.Transactions, 1)
	entry := w.Transactions[0]
	assert.Equal(t, KindBudgetSet, entry.Kind)
	assert.Equal(t, 400.0, entry.Amount)
	assert.Equal(t, "Monthly budget set for March 2025", entry.Description)
}

func TestApplyBudgetCreatesMonthRecord(t *testing.T) {
	w := &Wallet{UserID: "u1"}

	w.ApplyBudget(250, march15)

	require.Len(t, w.MonthlyExpenses, 1)
	assert.Equal(t, "March 2025", w.MonthlyExpenses[0].Month)
	assert.Equal(t, 250.0, w.MonthlyExpenses[0].Budget)
	assert.Equal(t, 0.0, w.MonthlyExpenses[0].Spent)
}

func TestStats(t *testing.T) {
	w := &Wallet{UserID: "u1", CurrentBalance: 80, MonthlyBudget: 200}
	w.RecordSpend(50, march15)

	stats := w.Stats(march15)

	assert.Equal(t, 80.0, stats.CurrentBalance)
	assert.Equal(t, 200.0, stats.MonthlyBudget)
	assert.Equal(t, "March 2025", stats.CurrentMonth)
	assert.Equal(t, 50.0, stats.Spent)
	assert.Equal(t, 150.0, stats.Remaining)
	assert.Equal(t, 25.0, stats.PercentageUsed)
}

func TestStatsZeroBudget(t *testing.T) {
	w := &Wallet{UserID: "u1", CurrentBalance: 80, MonthlyBudget: 0}
	w.RecordSpend(50, march15)

	stats := w.Stats(march15)

	assert.Equal(t, 0.0, stats.PercentageUsed, "zero budget must report 0%%, not NaN")
	assert.False(t, stats.PercentageUsed != stats.PercentageUsed, "must never be NaN")
	assert.Equal(t, -50.0, stats.Remaining)
}

func TestStatsNoRecordForMonth(t *testing.T) {
	w := &Wallet{UserID: "u1", CurrentBalance: 80, MonthlyBudget: 300}
	w.RecordSpend(50, march15.AddDate(0, -1, 0)) // spend in February only

	stats := w.Stats(march15)

	assert.Equal(t, "March 2025", stats.CurrentMonth)
	assert.Equal(t, 0.0, stats.Spent)
	assert.Equal(t, 300.0, stats.Remaining)
	assert.Equal(t, 0.0, stats.PercentageUsed)
}
