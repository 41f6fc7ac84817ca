package entity

import "time"

// Customer representa un cliente.
type Customer struct {
	ID           string
	Code         string // único
	Name         string
	Document     string // CPF/CNPJ
	Email        string
	Phone        string
	Zipcode      string
	Address      string
	Neighborhood string
	City         string
	State        string
	Notes        string
	Active       bool
	CreatedAt    time.Time
}
