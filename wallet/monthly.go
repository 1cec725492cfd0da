package wallet

import (
	"fmt"
	"time"
)

// Monthly rollups are derived lazily: the first debit or budget change that
// touches a new calendar month creates that month's record. There is no
// background rollover task.

// RecordSpend accrues a debit into the month derived from at, creating the
// month record if absent. A new record is seeded with the budget currently
// in effect.
func (w *Wallet) RecordSpend(amount float64, at time.Time) {
	month := MonthLabel(at)
	for i := range w.MonthlyExpenses {
		if w.MonthlyExpenses[i].Month == month {
			w.MonthlyExpenses[i].Spent += amount
			return
		}
	}
	w.MonthlyExpenses = append(w.MonthlyExpenses, MonthlyExpense{
		Month:  month,
		Year:   at.Year(),
		Spent:  amount,
		Budget: w.MonthlyBudget,
	})
}

// ReverseSpend backs a debit out of the month derived from at, so a
// reversed debit leaves the rollup as if it never happened. A month with
// no record is left untouched.
func (w *Wallet) ReverseSpend(amount float64, at time.Time) {
	month := MonthLabel(at)
	for i := range w.MonthlyExpenses {
		if w.MonthlyExpenses[i].Month == month {
			w.MonthlyExpenses[i].Spent -= amount
			return
		}
	}
}

// ApplyBudget sets the monthly budget, updates the current month's record
// (preserving whatever has already been spent) and appends a BUDGET_SET
// ledger entry.
func (w *Wallet) ApplyBudget(amount float64, at time.Time) {
	month := MonthLabel(at)
	w.MonthlyBudget = amount

	found := false
	for i := range w.MonthlyExpenses {
		if w.MonthlyExpenses[i].Month == month {
			w.MonthlyExpenses[i].Budget = amount
			found = true
			break
		}
	}
	if !found {
		w.MonthlyExpenses = append(w.MonthlyExpenses, MonthlyExpense{
			Month:  month,
			Year:   at.Year(),
			Spent:  0,
			Budget: amount,
		})
	}

	w.appendEntry(KindBudgetSet, amount, fmt.Sprintf("Monthly budget set for %s", month), at)
}

// MonthlyStats is the per-month snapshot returned by the stats endpoint.
type MonthlyStats struct {
	CurrentBalance float64 `json:"current_balance"`
	MonthlyBudget  float64 `json:"monthly_budget"`
	CurrentMonth   string  `json:"current_month"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
}

// Stats derives the rollup for the month at falls in. A month with no
// record yet reports zero spend against the current budget. PercentageUsed
// is 0 when the budget is 0, never NaN.
func (w *Wallet) Stats(at time.Time) MonthlyStats {
	month := MonthLabel(at)
	current := MonthlyExpense{Month: month, Year: at.Year(), Budget: w.MonthlyBudget}
	for _, m := range w.MonthlyExpenses {
		if m.Month == month {
			current = m
			break
		}
	}

	percentage := 0.0
	if current.Budget != 0 {
		percentage = current.Spent / current.Budget * 100
	}

	return MonthlyStats{
		CurrentBalance: w.CurrentBalance,
		MonthlyBudget:  w.MonthlyBudget,
		CurrentMonth:   current.Month,
		Spent:          current.Spent,
		Remaining:      current.Budget - current.Spent,
		PercentageUsed: percentage,
	}
}
