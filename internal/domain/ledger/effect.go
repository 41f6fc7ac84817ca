// Package ledger contiene la regla de efecto de los movimientos de stock
// (servicio de dominio puro, sin persistencia).
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// Apply devuelve el saldo resultante de aplicar un movimiento sobre el saldo
// actual, según la regla de efecto con signo:
//
//	in     → saldo + cantidad
//	out    → saldo − cantidad
//	adjust → cantidad (fija el saldo, no lo desplaza)
//
// La cantidad debe ser estrictamente positiva; el signo lo aporta el tipo.
func Apply(current decimal.Decimal, movementType string, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidQuantity
	}
	switch movementType {
	case entity.MovementTypeIn:
		return current.Add(quantity), nil
	case entity.MovementTypeOut:
		return current.Sub(quantity), nil
	case entity.MovementTypeAdjust:
		return quantity, nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

// Fold reduce una secuencia de movimientos (en orden cronológico) al saldo
// final, partiendo de saldo cero. Es el valor autoritativo contra el que se
// valida el cache Product.CurrentStock.
func Fold(movements []*entity.StockMovement) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, m := range movements {
		next, err := Apply(balance, m.Type, m.Quantity)
		if err != nil {
			return decimal.Zero, err
		}
		balance = next
	}
	return balance, nil
}
