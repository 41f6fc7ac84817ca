package repository

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CostFilter filtros de listado de costos de producción.
type CostFilter struct {
	ProductID      string
	CostType       string
	RefinementCode string
	IsLocked       *bool
	Search         string
	Limit          int
	Offset         int
}

// ProductionCostRepository define el puerto de persistencia para
// ProductionCost. Update y Delete no tocan filas bloqueadas; el caso de uso
// traduce esa condición a ErrLocked.
type ProductionCostRepository interface {
	Create(cost *entity.ProductionCost) error
	GetByID(id string) (*entity.ProductionCost, error)
	Update(cost *entity.ProductionCost) error
	Delete(id string) error
	List(filter CostFilter) ([]*entity.ProductionCost, error)
	// ListByRefinementCode devuelve todos los costos del código, bloqueados o
	// no (el snapshot lee el grupo completo).
	ListByRefinementCode(code string) ([]*entity.ProductionCost, error)
	// ListWithRefinement devuelve los costos con código de refinamiento no
	// vacío, opcionalmente filtrados por producto y excluyendo bloqueados.
	ListWithRefinement(productID string, includeLocked bool) ([]*entity.ProductionCost, error)
	// LockByRefinementCode bloquea atómicamente los miembros aún no
	// bloqueados del código. Idempotente: re-bloquear no toca filas ya
	// bloqueadas. Devuelve cuántas filas bloqueó.
	LockByRefinementCode(code, saleID string, at time.Time) (int64, error)
}
