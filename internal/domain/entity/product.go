package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida admitidas para productos.
const (
	UnitUnidad = "UN"
	UnitKilo   = "KG"
	UnitLitro  = "L"
	UnitMetro  = "M"
	UnitCaja   = "CX"
	UnitPieza  = "PC"
)

// Product representa un producto del catálogo.
//
// CurrentStock es un valor derivado: la fuente de verdad es la secuencia de
// StockMovement del producto; se cachea aquí para lecturas rápidas y solo lo
// muta el motor de inventario (nunca una edición directa del producto).
type Product struct {
	ID           string
	Code         string // código único
	Name         string
	Description  string
	CategoryID   string // opcional
	Unit         string // UN, KG, L, M, CX, PC
	PurchasePrice decimal.Decimal
	SalePrice    decimal.Decimal
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	Location     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
