package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CreateSaleItemRequest línea de venta en POST /api/sales.
type CreateSaleItemRequest struct {
	ProductID          string          `json:"product_id" validate:"required,uuid4"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	Discount           decimal.Decimal `json:"discount"`
	Tax                decimal.Decimal `json:"tax"`
	Freight            decimal.Decimal `json:"freight"`
	CostRefinementCode string          `json:"cost_refinement_code,omitempty" validate:"omitempty,max=50"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Number        string                  `json:"number,omitempty" validate:"omitempty,max=50"`
	CustomerID    string                  `json:"customer_id,omitempty" validate:"omitempty,uuid4"`
	Date          time.Time               `json:"date" validate:"required"`
	Discount      decimal.Decimal         `json:"discount"`
	PaymentMethod string                  `json:"payment_method,omitempty" validate:"omitempty,oneof=cash credit_card debit_card pix boleto transfer"`
	Status        string                  `json:"status,omitempty" validate:"omitempty,oneof=disputed approved in_production awaiting_payment settled"`
	Notes         string                  `json:"notes,omitempty"`
	Items         []CreateSaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransitionSaleRequest body para PATCH /api/sales/:id/status.
type TransitionSaleRequest struct {
	Status string `json:"status" validate:"required,oneof=disputed approved in_production awaiting_payment settled"`
}

// CostSnapshotResponse forma JSON persistida y expuesta del snapshot.
// Retrocompatibilidad: reportes externos dependen de estos nombres.
type CostSnapshotResponse struct {
	RefinementCode string                     `json:"refinement_code"`
	Breakdown      map[string]decimal.Decimal `json:"breakdown"`
	Total          decimal.Decimal            `json:"total"`
	CostIDs        []string                   `json:"cost_ids"`
	CalculatedAt   time.Time                  `json:"calculated_at"`
}

// SaleItemResponse representación HTTP de una línea de venta.
type SaleItemResponse struct {
	ID                 string                `json:"id"`
	ProductID          string                `json:"product_id"`
	Quantity           decimal.Decimal       `json:"quantity"`
	UnitPrice          decimal.Decimal       `json:"unit_price"`
	UnitCost           decimal.Decimal       `json:"unit_cost"`
	Discount           decimal.Decimal       `json:"discount"`
	Tax                decimal.Decimal       `json:"tax"`
	Freight            decimal.Decimal       `json:"freight"`
	TotalPrice         decimal.Decimal       `json:"total_price"`
	TotalCost          decimal.Decimal       `json:"total_cost"`
	Profit             decimal.Decimal       `json:"profit"`
	CostRefinementCode string                `json:"cost_refinement_code,omitempty"`
	CostSnapshot       *CostSnapshotResponse `json:"cost_snapshot,omitempty"`
	CostCalculatedAt   *time.Time            `json:"cost_calculated_at,omitempty"`
}

// SaleResponse representación HTTP de una venta con sus ítems.
type SaleResponse struct {
	ID            string             `json:"id"`
	Number        string             `json:"number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Date          time.Time          `json:"date"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Discount      decimal.Decimal    `json:"discount"`
	FinalAmount   decimal.Decimal    `json:"final_amount"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Status        string             `json:"status"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// NextNumberResponse respuesta de GET /api/sales/next-number.
type NextNumberResponse struct {
	NextNumber string `json:"next_number"`
}

// ToSaleItemResponse convierte la entidad a su representación HTTP.
func ToSaleItemResponse(i *entity.SaleItem) SaleItemResponse {
	resp := SaleItemResponse{
		ID:                 i.ID,
		ProductID:          i.ProductID,
		Quantity:           i.Quantity,
		UnitPrice:          i.UnitPrice,
		UnitCost:           i.UnitCost,
		Discount:           i.Discount,
		Tax:                i.Tax,
		Freight:            i.Freight,
		TotalPrice:         i.TotalPrice,
		TotalCost:          i.TotalCost,
		Profit:             i.Profit,
		CostRefinementCode: i.CostRefinementCode,
		CostCalculatedAt:   i.CostCalculatedAt,
	}
	if i.CostSnapshot != nil {
		resp.CostSnapshot = &CostSnapshotResponse{
			RefinementCode: i.CostSnapshot.RefinementCode,
			Breakdown:      i.CostSnapshot.Breakdown,
			Total:          i.CostSnapshot.Total,
			CostIDs:        i.CostSnapshot.CostIDs,
			CalculatedAt:   i.CostSnapshot.CalculatedAt,
		}
	}
	return resp
}

// ToSaleResponse convierte la entidad a su representación HTTP.
func ToSaleResponse(s *entity.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		CustomerID:    s.CustomerID,
		Date:          s.Date,
		TotalAmount:   s.TotalAmount,
		Discount:      s.Discount,
		FinalAmount:   s.FinalAmount,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, ToSaleItemResponse(item))
	}
	return resp
}
