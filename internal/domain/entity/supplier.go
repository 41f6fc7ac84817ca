package entity

import "time"

// Supplier representa un proveedor.
type Supplier struct {
	ID          string
	Code        string // único
	Name        string
	Document    string // CNPJ
	ContactName string
	Email       string
	Phone       string
	Zipcode     string
	Address     string
	City        string
	State       string
	Notes       string
	Active      bool
	CreatedAt   time.Time
}
