package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/ledger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Entrada suma, salida resta, ajuste fija el saldo.
func TestApply_ReglaDeEfecto(t *testing.T) {
	balance, err := ledger.Apply(d("0"), entity.MovementTypeIn, d("50"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("50")), "entrada de 50 sobre 0 debe dar 50")

	balance, err = ledger.Apply(balance, entity.MovementTypeOut, d("20"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("30")), "salida de 20 sobre 50 debe dar 30")

	balance, err = ledger.Apply(balance, entity.MovementTypeAdjust, d("100"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("100")), "ajuste a 100 fija el saldo, no suma (no 130)")
}

// La salida puede dejar el saldo negativo: la regla no impone piso.
func TestApply_PermiteSaldoNegativo(t *testing.T) {
	balance, err := ledger.Apply(d("10"), entity.MovementTypeOut, d("25"))
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-15")))
}

func TestApply_CantidadNoPositiva(t *testing.T) {
	_, err := ledger.Apply(d("10"), entity.MovementTypeIn, d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = ledger.Apply(d("10"), entity.MovementTypeOut, d("-3"))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestApply_TipoDesconocido(t *testing.T) {
	_, err := ledger.Apply(d("10"), "transfer", d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Invariante del libro: el fold de los efectos con signo, en orden, reproduce
// el saldo que el cache del producto debe reflejar.
func TestFold_InvarianteDeSuma(t *testing.T) {
	movs := []*entity.StockMovement{
		{Type: entity.MovementTypeIn, Quantity: d("50")},
		{Type: entity.MovementTypeOut, Quantity: d("20")},
		{Type: entity.MovementTypeAdjust, Quantity: d("100")},
		{Type: entity.MovementTypeOut, Quantity: d("40.5")},
	}
	balance, err := ledger.Fold(movs)
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("59.5")))
}
