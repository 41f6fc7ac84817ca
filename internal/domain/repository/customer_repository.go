package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// PartnerFilter filtros comunes de listado de clientes y proveedores.
type PartnerFilter struct {
	Search string
	Active *bool
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
	List(filter PartnerFilter) ([]*entity.Customer, error)
	CountActive() (int, error)
}
