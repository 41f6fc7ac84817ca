package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	List(filter PartnerFilter) ([]*entity.Supplier, error)
	CountActive() (int, error)
}
