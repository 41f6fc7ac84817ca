package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CategoryRequest body de creación/actualización de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse representación HTTP de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseRequest body de creación/actualización de gasto.
type ExpenseRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type" validate:"required,max=50"`
	Date        time.Time       `json:"date" validate:"required"`
	Notes       string          `json:"notes,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// ExpenseResponse representación HTTP de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CompanyRequest body de PUT /api/company.
type CompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	TradeName string `json:"trade_name,omitempty" validate:"omitempty,max=200"`
	Document  string `json:"document,omitempty" validate:"omitempty,max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address   string `json:"address,omitempty" validate:"omitempty,max=300"`
	City      string `json:"city,omitempty" validate:"omitempty,max=100"`
	State     string `json:"state,omitempty" validate:"omitempty,len=2"`
	Zipcode   string `json:"zipcode,omitempty" validate:"omitempty,max=10"`
}

// CompanyResponse representación HTTP de la empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TradeName string    `json:"trade_name,omitempty"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Zipcode   string    `json:"zipcode,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse convierte la entidad a su representación HTTP.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}

// ToExpenseResponse convierte la entidad a su representación HTTP.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID: e.ID, Name: e.Name, Amount: e.Amount, ExpenseType: e.ExpenseType,
		Date: e.Date, Notes: e.Notes, Active: e.Active,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

// ToCompanyResponse convierte la entidad a su representación HTTP.
func ToCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID: c.ID, Name: c.Name, TradeName: c.TradeName, Document: c.Document,
		Email: c.Email, Phone: c.Phone, Address: c.Address, City: c.City,
		State: c.State, Zipcode: c.Zipcode, UpdatedAt: c.UpdatedAt,
	}
}
