package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWorkbook(t *testing.T) {
	expenses := []Expense{
		{Description: "Groceries", Amount: 30.5, Category: CategoryFood, Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)},
		{Description: "Bus ticket", Amount: 2, Category: CategoryTransportation, Date: time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC)},
	}

	f, err := BuildWorkbook(expenses)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Expenses"}, f.GetSheetList())

	header, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, header, 3)
	assert.Equal(t, []string{"Description", "Amount", "Category", "Date"}, header[0])
	assert.Equal(t, []string{"Groceries", "30.5", "Food", "2025-06-10"}, header[1])
	assert.Equal(t, []string{"Bus ticket", "2", "Transportation", "2025-06-09"}, header[2])

	width, err := f.GetColWidth("Expenses", "A")
	require.NoError(t, err)
	assert.Equal(t, 30.0, width)
}

func TestBuildWorkbookEmpty(t *testing.T) {
	f, err := BuildWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
