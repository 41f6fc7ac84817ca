package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CreateCostRequest body para POST /api/costs.
type CreateCostRequest struct {
	ProductID      string          `json:"product_id" validate:"required,uuid4"`
	Description    string          `json:"description" validate:"required,max=200"`
	CostType       string          `json:"cost_type" validate:"required,max=30"`
	Value          decimal.Decimal `json:"value"`
	Date           time.Time       `json:"date" validate:"required"`
	RefinementCode string          `json:"refinement_code,omitempty" validate:"omitempty,max=50"`
	RefinementName string          `json:"refinement_name,omitempty" validate:"omitempty,max=100"`
	Notes          string          `json:"notes,omitempty"`
}

// UpdateCostRequest body para PUT /api/costs/:id. Rechazado con LOCKED si el
// costo ya está bloqueado.
type UpdateCostRequest struct {
	Description    string          `json:"description" validate:"required,max=200"`
	CostType       string          `json:"cost_type" validate:"required,max=30"`
	Value          decimal.Decimal `json:"value"`
	Date           time.Time       `json:"date" validate:"required"`
	RefinementCode string          `json:"refinement_code,omitempty" validate:"omitempty,max=50"`
	RefinementName string          `json:"refinement_name,omitempty" validate:"omitempty,max=100"`
	Notes          string          `json:"notes,omitempty"`
}

// CostResponse representación HTTP de un costo de producción.
type CostResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Description    string          `json:"description"`
	CostType       string          `json:"cost_type"`
	Value          decimal.Decimal `json:"value"`
	Date           time.Time       `json:"date"`
	RefinementCode string          `json:"refinement_code,omitempty"`
	RefinementName string          `json:"refinement_name,omitempty"`
	IsLocked       bool            `json:"is_locked"`
	LockedBySaleID string          `json:"locked_by_sale,omitempty"`
	LockedAt       *time.Time      `json:"locked_at,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RefinementResponse grupo de costos bajo un código, con su agregado y
// estado de bloqueo.
type RefinementResponse struct {
	Code           string          `json:"refinement_code"`
	Name           string          `json:"refinement_name,omitempty"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	ProductCode    string          `json:"product_code,omitempty"`
	Costs          []CostResponse  `json:"costs"`
	Total          decimal.Decimal `json:"total"`
	IsLocked       bool            `json:"is_locked"`
	LockedBySaleID string          `json:"locked_by_sale,omitempty"`
	LockedAt       *time.Time      `json:"locked_at,omitempty"`
}

// ToCostResponse convierte la entidad a su representación HTTP.
func ToCostResponse(c *entity.ProductionCost) CostResponse {
	return CostResponse{
		ID:             c.ID,
		ProductID:      c.ProductID,
		Description:    c.Description,
		CostType:       c.CostType,
		Value:          c.Value,
		Date:           c.Date,
		RefinementCode: c.RefinementCode,
		RefinementName: c.RefinementName,
		IsLocked:       c.IsLocked,
		LockedBySaleID: c.LockedBySaleID,
		LockedAt:       c.LockedAt,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
	}
}

// ToRefinementResponse convierte el grupo de dominio a su representación HTTP.
func ToRefinementResponse(r *entity.Refinement) RefinementResponse {
	resp := RefinementResponse{
		Code:           r.Code,
		Name:           r.Name,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		ProductCode:    r.ProductCode,
		Total:          r.Total,
		IsLocked:       r.IsLocked,
		LockedBySaleID: r.LockedBySaleID,
		LockedAt:       r.LockedAt,
		Costs:          make([]CostResponse, 0, len(r.Costs)),
	}
	for _, c := range r.Costs {
		resp.Costs = append(resp.Costs, ToCostResponse(c))
	}
	return resp
}
