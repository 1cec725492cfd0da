package expense

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"my-expenses-backend/domain"
)

const exportSheet = "Expenses"

// BuildWorkbook renders expenses into a spreadsheet with one row per
// expense: Description, Amount, Category, Date.
func BuildWorkbook(expenses []Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []interface{}{"Description", "Amount", "Category", "Date"}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		return nil, err
	}

	for i, exp := range expenses {
		row := []interface{}{
			exp.Description,
			exp.Amount,
			exp.Category,
			exp.Date.Format(dateLayout),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	widths := []float64{30, 10, 15, 12}
	for i, w := range widths {
		col := string(rune('A' + i))
		if err := f.SetColWidth(exportSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// HandleExportExpenses streams the caller's expenses as an xlsx
// attachment. Optional query parameters: category, start_date, end_date
// (YYYY-MM-DD, inclusive).
func (h *Handler) HandleExportExpenses(c *gin.Context) {
	userID := c.GetString("user_id")

	q := ListQuery{SortBy: SortByDate}
	if category := c.Query("category"); category != "" && category != "All" {
		q.Category = category
	}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		from, err := time.Parse(dateLayout, startDate)
		if err != nil {
			h.respondError(c, &domain.ErrValidation{Field: "start_date", Message: "must be YYYY-MM-DD"})
			return
		}
		to, err := time.Parse(dateLayout, endDate)
		if err != nil {
			h.respondError(c, &domain.ErrValidation{Field: "end_date", Message: "must be YYYY-MM-DD"})
			return
		}
		q.From = from
		q.To = to.AddDate(0, 0, 1)
	}

	expenses, err := h.coordinator.expenses.List(c.Request.Context(), userID, q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	workbook, err := BuildWorkbook(expenses)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("Expenses_%s.xlsx", time.Now().Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		h.logger.Error("could not write export", zap.String("user_id", userID), zap.Error(err))
	}
}
