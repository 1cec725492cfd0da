package wallet

import "fmt"

// Alert levels.
const (
	AlertWarning = "warning"
	AlertDanger  = "danger"
)

// Alert is a spending alert surfaced to the user.
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SetCategoryLimit upserts the budget limit for a category, preserving any
// spend already tracked against it.
func (w *Wallet) SetCategoryLimit(category string, limit float64) {
	for i := range w.Categories {
		if w.Categories[i].Name == category {
			w.Categories[i].BudgetLimit = limit
			return
		}
	}
	w.Categories = append(w.Categories, CategoryBudget{Name: category, BudgetLimit: limit, Spent: 0})
}

// EvaluateAlerts compares the wallet's spending rate against the pace the
// monthly budget allows, and each category's spend against its limit.
// A category with a zero limit is treated as 0% used rather than dividing
// by zero.
func (w *Wallet) EvaluateAlerts(daysElapsed, daysInMonth int) []Alert {
	alerts := []Alert{}

	if daysElapsed > 0 && daysInMonth > 0 {
		expectedRate := w.MonthlyBudget / float64(daysInMonth)
		actualRate := (w.MonthlyBudget - w.CurrentBalance) / float64(daysElapsed)
		if actualRate > expectedRate*1.2 {
			alerts = append(alerts, Alert{
				Type:    AlertWarning,
				Message: "Your spending rate is higher than expected",
			})
		}
	}

	for _, cat := range w.Categories {
		if cat.BudgetLimit <= 0 {
			continue
		}
		spentPercentage := cat.Spent / cat.BudgetLimit * 100
		if spentPercentage >= 80 {
			alerts = append(alerts, Alert{
				Type:    AlertDanger,
				Message: fmt.Sprintf("You've spent %.1f%% of your %s budget", spentPercentage, cat.Name),
			})
		}
	}

	return alerts
}
