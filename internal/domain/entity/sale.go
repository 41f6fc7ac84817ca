package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Progresión en un solo sentido; el motor de
// liquidación solo dispara efectos al entrar por primera vez en settled.
const (
	SaleStatusDisputed        = "disputed"
	SaleStatusApproved        = "approved"
	SaleStatusInProduction    = "in_production"
	SaleStatusAwaitingPayment = "awaiting_payment"
	SaleStatusSettled         = "settled" // terminal: bloquea costos y captura snapshots
)

// Formas de pago.
const (
	PaymentCash     = "cash"
	PaymentCredit   = "credit_card"
	PaymentDebit    = "debit_card"
	PaymentPix      = "pix"
	PaymentBoleto   = "boleto"
	PaymentTransfer = "transfer"
)

// ValidSaleStatus indica si s es un estado de venta conocido.
func ValidSaleStatus(s string) bool {
	switch s {
	case SaleStatusDisputed, SaleStatusApproved, SaleStatusInProduction,
		SaleStatusAwaitingPayment, SaleStatusSettled:
		return true
	}
	return false
}

// Sale representa la cabecera de una venta. FinalAmount es derivado
// (TotalAmount − Discount) y se recalcula en cada persistencia, dentro de la
// misma transacción que cambia sus entradas.
type Sale struct {
	ID            string
	Number        string // número de venta secuencial, único
	CustomerID    string // opcional
	Date          time.Time
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal
	PaymentMethod string
	Status        string
	Notes         string
	CreatedAt     time.Time
	Items         []*SaleItem
}

// ComputeFinalAmount recalcula el derivado FinalAmount a partir de los
// campos autoritativos.
func (s *Sale) ComputeFinalAmount() {
	s.FinalAmount = s.TotalAmount.Sub(s.Discount)
}

// SaleItem representa una línea de venta. TotalPrice, TotalCost y Profit son
// derivados y se recalculan en cada persistencia.
//
// CostSnapshot es write-once: una vez capturado nunca se sobrescribe; es el
// registro histórico del desglose de costos del refinamiento referenciado.
type SaleItem struct {
	ID                 string
	SaleID             string
	ProductID          string
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal
	UnitCost           decimal.Decimal
	Discount           decimal.Decimal
	Tax                decimal.Decimal
	Freight            decimal.Decimal
	TotalPrice         decimal.Decimal
	TotalCost          decimal.Decimal
	Profit             decimal.Decimal
	CostRefinementCode string
	CostSnapshot       *CostSnapshot
	CostCalculatedAt   *time.Time
}

// ComputeDerived recalcula TotalPrice, TotalCost y Profit.
//
//	TotalPrice = Quantity·UnitPrice − Discount
//	TotalCost  = Quantity·UnitCost
//	Profit     = TotalPrice − TotalCost − Tax − Freight
func (i *SaleItem) ComputeDerived() {
	i.TotalPrice = i.Quantity.Mul(i.UnitPrice).Sub(i.Discount)
	i.TotalCost = i.Quantity.Mul(i.UnitCost)
	i.Profit = i.TotalPrice.Sub(i.TotalCost).Sub(i.Tax).Sub(i.Freight)
}

// CostSnapshot es el documento inmutable con el desglose de costos de un
// refinamiento, capturado en el ítem de venta. Su forma persistida (JSON) es
// visible para la capa de reportes y debe mantenerse retrocompatible.
type CostSnapshot struct {
	RefinementCode string                     `json:"refinement_code"`
	Breakdown      map[string]decimal.Decimal `json:"breakdown"`
	Total          decimal.Decimal            `json:"total"`
	CostIDs        []string                   `json:"cost_ids"`
	CalculatedAt   time.Time                  `json:"calculated_at"`
}
