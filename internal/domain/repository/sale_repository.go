package repository

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas.
type SaleFilter struct {
	Status     string
	CustomerID string
	Search     string
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
// Los ítems pertenecen a la venta (borrado en cascada con ella).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar
	// liquidaciones concurrentes de la misma venta.
	GetForUpdate(id string) (*entity.Sale, error)
	Update(sale *entity.Sale) error
	UpdateStatus(id, status string) error
	Delete(id string) error
	List(filter SaleFilter) ([]*entity.Sale, error)
	ListRecent(limit int) ([]*entity.Sale, error)
	ListItems(saleID string) ([]*entity.SaleItem, error)
	// SetItemSnapshot escribe el snapshot una única vez (solo si la columna
	// sigue vacía). Devuelve false si el ítem ya tenía snapshot.
	SetItemSnapshot(itemID string, snapshot *entity.CostSnapshot, at time.Time) (bool, error)
	// LastNumber devuelve el número de la última venta creada ("" si no hay).
	LastNumber() (string, error)
}
