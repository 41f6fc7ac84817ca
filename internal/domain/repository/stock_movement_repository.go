package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ProductID string
	Type      string
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos. Solo inserción y lectura: los movimientos son inmutables y las
// correcciones son movimientos nuevos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
}
