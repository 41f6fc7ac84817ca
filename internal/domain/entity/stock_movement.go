package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIn     = "in"     // entrada: suma al stock
	MovementTypeOut    = "out"    // salida: resta del stock
	MovementTypeAdjust = "adjust" // ajuste: fija el stock al valor indicado (conteo físico)
)

// Tipos de referencia de un movimiento (evento de negocio que lo originó).
const (
	ReferenceTypePurchase   = "purchase"
	ReferenceTypeSale       = "sale"
	ReferenceTypeReturn     = "return"
	ReferenceTypeInventory  = "inventory_adjustment"
	ReferenceTypeLoss       = "loss"
	ReferenceTypeOther      = "other"
)

// StockMovement representa un movimiento de stock. Inmutable una vez creado:
// las correcciones son movimientos nuevos, nunca updates ni deletes.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string          // in, out, adjust
	Quantity      decimal.Decimal // siempre positiva; el signo lo da Type
	UnitPrice     *decimal.Decimal
	TotalPrice    *decimal.Decimal // UnitPrice * Quantity cuando hay precio
	ReferenceType string           // purchase, sale, ... (vacío = sin referencia)
	ReferenceID   string           // ID del evento de negocio referenciado
	Notes         string
	CreatedAt     time.Time
}
