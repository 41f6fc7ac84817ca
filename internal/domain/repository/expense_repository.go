package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// ExpenseFilter filtros de listado de gastos.
type ExpenseFilter struct {
	Search      string
	ExpenseType string
	Active      *bool
	Limit       int
	Offset      int
}

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
	List(filter ExpenseFilter) ([]*entity.Expense, error)
}
