// Package costing contiene los servicios de dominio puros del registro de
// costos: agregación de refinamientos y construcción de snapshots.
package costing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// BuildSnapshot compone el documento inmutable de desglose de costos de un
// refinamiento a partir de los costos visibles en ese instante.
//
// Breakdown mapea tipo de costo → valor; si hay tipos repetidos bajo el mismo
// código gana el último (no se agregan entre sí). Total sí suma todos los
// costos, repetidos incluidos. CostIDs lista a todos los aportantes.
func BuildSnapshot(code string, costs []*entity.ProductionCost, at time.Time) *entity.CostSnapshot {
	snap := &entity.CostSnapshot{
		RefinementCode: code,
		Breakdown:      make(map[string]decimal.Decimal, len(costs)),
		Total:          decimal.Zero,
		CostIDs:        make([]string, 0, len(costs)),
		CalculatedAt:   at,
	}
	for _, c := range costs {
		snap.Breakdown[c.CostType] = c.Value
		snap.Total = snap.Total.Add(c.Value)
		snap.CostIDs = append(snap.CostIDs, c.ID)
	}
	return snap
}

// GroupRefinements agrupa costos por RefinementCode no vacío y calcula el
// agregado de cada grupo. El estado de bloqueo del grupo es true si cualquier
// miembro está bloqueado (el bloqueo siempre cubre el código completo).
// Preserva el orden de primera aparición de cada código.
func GroupRefinements(costs []*entity.ProductionCost) []*entity.Refinement {
	byCode := make(map[string]*entity.Refinement)
	var order []string
	for _, c := range costs {
		if c.RefinementCode == "" {
			continue
		}
		ref, ok := byCode[c.RefinementCode]
		if !ok {
			ref = &entity.Refinement{
				Code:      c.RefinementCode,
				Name:      c.RefinementName,
				ProductID: c.ProductID,
				Total:     decimal.Zero,
			}
			byCode[c.RefinementCode] = ref
			order = append(order, c.RefinementCode)
		}
		ref.Costs = append(ref.Costs, c)
		ref.Total = ref.Total.Add(c.Value)
		if c.IsLocked {
			ref.IsLocked = true
			if ref.LockedBySaleID == "" {
				ref.LockedBySaleID = c.LockedBySaleID
				ref.LockedAt = c.LockedAt
			}
		}
	}
	out := make([]*entity.Refinement, 0, len(order))
	for _, code := range order {
		out = append(out, byCode[code])
	}
	return out
}
