package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ExpenseUseCase gestiona los gastos operativos.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo}
}

// CreateExpense registra un gasto.
func (uc *ExpenseUseCase) CreateExpense(ctx context.Context, in dto.ExpenseRequest) (*entity.Expense, error) {
	if in.Amount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Amount:      in.Amount,
		ExpenseType: in.ExpenseType,
		Date:        in.Date,
		Notes:       in.Notes,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Active != nil {
		expense.Active = *in.Active
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense obtiene un gasto por ID.
func (uc *ExpenseUseCase) GetExpense(ctx context.Context, id string) (*entity.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	return expense, nil
}

// UpdateExpense actualiza un gasto.
func (uc *ExpenseUseCase) UpdateExpense(ctx context.Context, id string, in dto.ExpenseRequest) (*entity.Expense, error) {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, domain.ErrNotFound
	}
	if in.Amount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	expense.Name = in.Name
	expense.Amount = in.Amount
	expense.ExpenseType = in.ExpenseType
	expense.Date = in.Date
	expense.Notes = in.Notes
	if in.Active != nil {
		expense.Active = *in.Active
	}
	expense.UpdatedAt = time.Now()
	if err := uc.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense elimina un gasto.
func (uc *ExpenseUseCase) DeleteExpense(ctx context.Context, id string) error {
	expense, err := uc.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}
	if expense == nil {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(id)
}

// ListExpenses lista gastos con filtros.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, filter repository.ExpenseFilter) ([]*entity.Expense, error) {
	return uc.expenseRepo.List(filter)
}
