package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search     string // código, nombre o descripción (sin acentos)
	CategoryID string
	Active     *bool
	LowStock   bool // current_stock < min_stock
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// UpdateStock y GetForUpdate existen solo para el motor de inventario: el
// cache CurrentStock nunca se muta por otra vía.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar movimientos concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock decimal.Decimal) error
	List(filter ProductFilter) ([]*entity.Product, error)
	ListLowStock(limit int) ([]*entity.Product, error)
	Delete(id string) error
}
