package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa un gasto operativo (no asociado a producción).
type Expense struct {
	ID          string
	Name        string
	Amount      decimal.Decimal
	ExpenseType string
	Date        time.Time
	Notes       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
