package entity

import "time"

// Company datos de la empresa emisora (cabecera de reportes y documentos).
type Company struct {
	ID        string
	Name      string
	TradeName string
	Document  string // CNPJ
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Zipcode   string
	UpdatedAt time.Time
}
