package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de costo de producción (categoría libre; estos son los sugeridos).
const (
	CostTypeMaterial  = "material"
	CostTypeLabor     = "labor"
	CostTypeEnergy    = "energy"
	CostTypeTransport = "transport"
	CostTypeOther     = "other"
)

// ProductionCost representa un aporte de costo a un producto. Los costos que
// comparten RefinementCode forman un refinamiento: una "receta" de insumos
// que se valora y se bloquea como unidad.
//
// Invariante: con IsLocked en true, Value, CostType y RefinementCode son
// inmutables; IsLocked nunca vuelve a false y LockedBySaleID se asigna una
// sola vez, junto con el bloqueo.
type ProductionCost struct {
	ID             string
	ProductID      string
	Description    string
	CostType       string
	Value          decimal.Decimal
	Date           time.Time
	RefinementCode string // vacío = costo informal, nunca se bloquea ni snapshotea
	RefinementName string
	IsLocked       bool
	LockedBySaleID string
	LockedAt       *time.Time
	Notes          string
	CreatedAt      time.Time
}

// Refinement agrupa los costos que comparten un RefinementCode no vacío.
// IsLocked es true si cualquier miembro está bloqueado: el bloqueo siempre
// se aplica al grupo completo, así que el estado es uniforme por código.
type Refinement struct {
	Code           string
	Name           string
	ProductID      string
	ProductName    string
	ProductCode    string
	Costs          []*ProductionCost
	Total          decimal.Decimal
	IsLocked       bool
	LockedBySaleID string
	LockedAt       *time.Time
}
