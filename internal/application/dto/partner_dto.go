package dto

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CustomerRequest body de creación/actualización de cliente.
type CustomerRequest struct {
	Code         string `json:"code" validate:"required,max=50"`
	Name         string `json:"name" validate:"required,max=200"`
	Document     string `json:"document,omitempty" validate:"omitempty,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Zipcode      string `json:"zipcode,omitempty" validate:"omitempty,max=10"`
	Address      string `json:"address,omitempty" validate:"omitempty,max=300"`
	Neighborhood string `json:"neighborhood,omitempty" validate:"omitempty,max=100"`
	City         string `json:"city,omitempty" validate:"omitempty,max=100"`
	State        string `json:"state,omitempty" validate:"omitempty,len=2"`
	Notes        string `json:"notes,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

// CustomerResponse representación HTTP de un cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Document     string    `json:"document,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Zipcode      string    `json:"zipcode,omitempty"`
	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierRequest body de creación/actualización de proveedor.
type SupplierRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Document    string `json:"document,omitempty" validate:"omitempty,max=20"`
	ContactName string `json:"contact_name,omitempty" validate:"omitempty,max=200"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Zipcode     string `json:"zipcode,omitempty" validate:"omitempty,max=10"`
	Address     string `json:"address,omitempty" validate:"omitempty,max=300"`
	City        string `json:"city,omitempty" validate:"omitempty,max=100"`
	State       string `json:"state,omitempty" validate:"omitempty,len=2"`
	Notes       string `json:"notes,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// SupplierResponse representación HTTP de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Document    string    `json:"document,omitempty"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Zipcode     string    `json:"zipcode,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCustomerResponse convierte la entidad a su representación HTTP.
func ToCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID: c.ID, Code: c.Code, Name: c.Name, Document: c.Document,
		Email: c.Email, Phone: c.Phone, Zipcode: c.Zipcode, Address: c.Address,
		Neighborhood: c.Neighborhood, City: c.City, State: c.State,
		Notes: c.Notes, Active: c.Active, CreatedAt: c.CreatedAt,
	}
}

// ToSupplierResponse convierte la entidad a su representación HTTP.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID: s.ID, Code: s.Code, Name: s.Name, Document: s.Document,
		ContactName: s.ContactName, Email: s.Email, Phone: s.Phone,
		Zipcode: s.Zipcode, Address: s.Address, City: s.City, State: s.State,
		Notes: s.Notes, Active: s.Active, CreatedAt: s.CreatedAt,
	}
}
