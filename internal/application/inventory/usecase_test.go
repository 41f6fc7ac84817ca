package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos (suficientes para el motor de inventario)
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return f.GetByID(id) }
func (f *fakeProductRepo) Update(p *entity.Product) error                  { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentStock = stock
	return nil
}
func (f *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListLowStock(int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) Delete(id string) error                      { delete(f.products, id); return nil }

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range f.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range f.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
func (f *fakeMovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	if len(f.movements) <= limit {
		return f.movements, nil
	}
	return f.movements[len(f.movements)-limit:], nil
}

// fakeTxRunner ejecuta el callback con los fakes y simula rollback
// restaurando el estado previo cuando el callback falla.
type fakeTxRunner struct {
	products  *fakeProductRepo
	movements *fakeMovementRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	prevProducts := make(map[string]*entity.Product, len(f.products.products))
	for id, p := range f.products.products {
		cp := *p
		prevProducts[id] = &cp
	}
	prevMovs := make([]*entity.StockMovement, len(f.movements.movements))
	copy(prevMovs, f.movements.movements)

	if err := fn(f.movements, f.products); err != nil {
		f.products.products = prevProducts
		f.movements.movements = prevMovs
		return err
	}
	return nil
}

func newLedgerFixture(stock string) (*inventory.StockLedgerUseCase, *fakeProductRepo, *fakeMovementRepo) {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "PRD-001", Name: "Producto", CurrentStock: d(stock), Active: true},
	}}
	movements := &fakeMovementRepo{}
	tx := &fakeTxRunner{products: products, movements: movements}
	return inventory.NewStockLedgerUseCase(tx, movements), products, movements
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del libro: in 50 → 50, out 20 → 30, adjust 100 → 100 (no 130).
func TestApply_EscenarioDelLibro(t *testing.T) {
	uc, products, movements := newLedgerFixture("0")
	ctx := context.Background()

	_, balance, err := uc.Apply(ctx, inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeIn, Quantity: d("50")})
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("50")))

	_, balance, err = uc.Apply(ctx, inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeOut, Quantity: d("20")})
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("30")))

	_, balance, err = uc.Apply(ctx, inventory.MovementInput{ProductID: "p1", Type: entity.MovementTypeAdjust, Quantity: d("100")})
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("100")), "el ajuste fija el stock, no lo desplaza")

	// El cache del producto refleja el fold de los movimientos
	p, _ := products.GetByID("p1")
	assert.True(t, p.CurrentStock.Equal(d("100")))
	assert.Len(t, movements.movements, 3, "cada aplicación inserta exactamente un movimiento")
}

func TestApply_RegistraPrecioYReferencia(t *testing.T) {
	uc, _, movements := newLedgerFixture("0")
	price := d("12.50")

	mov, _, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID:     "p1",
		Type:          entity.MovementTypeIn,
		Quantity:      d("4"),
		UnitPrice:     &price,
		ReferenceType: entity.ReferenceTypePurchase,
		ReferenceID:   "po-77",
	})
	require.NoError(t, err)
	require.NotNil(t, mov.TotalPrice)
	assert.True(t, mov.TotalPrice.Equal(d("50.00")), "total = precio unitario * cantidad")
	assert.Equal(t, entity.ReferenceTypePurchase, mov.ReferenceType)
	assert.Equal(t, "po-77", mov.ReferenceID)
	assert.Len(t, movements.movements, 1)
}

// El precio unitario es opcional: un movimiento sin precio se registra con
// UnitPrice y TotalPrice nulos, sin valores inventados.
func TestApply_SinPrecioUnitario(t *testing.T) {
	uc, _, movements := newLedgerFixture("10")

	mov, balance, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOut,
		Quantity:  d("3"),
	})
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("7")))
	assert.Nil(t, mov.UnitPrice, "sin precio informado el campo queda nulo")
	assert.Nil(t, mov.TotalPrice)
	require.Len(t, movements.movements, 1)
	assert.Nil(t, movements.movements[0].UnitPrice)
}

// La salida mayor que el saldo deja stock negativo: el libro no impone piso.
func TestApply_SalidaPermiteNegativo(t *testing.T) {
	uc, products, _ := newLedgerFixture("10")

	_, balance, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeOut, Quantity: d("25"),
	})
	require.NoError(t, err)
	assert.True(t, balance.Equal(d("-15")))

	p, _ := products.GetByID("p1")
	assert.True(t, p.CurrentStock.Equal(d("-15")))
}

func TestApply_CantidadInvalida(t *testing.T) {
	uc, _, movements := newLedgerFixture("10")

	_, _, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIn, Quantity: d("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, movements.movements, "un movimiento rechazado no debe persistirse")
}

func TestApply_ProductoInexistente(t *testing.T) {
	uc, _, movements := newLedgerFixture("10")

	_, _, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "no-existe", Type: entity.MovementTypeIn, Quantity: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements.movements)
}

func TestApply_TipoDesconocido(t *testing.T) {
	uc, _, _ := newLedgerFixture("10")

	_, _, err := uc.Apply(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: "transfer", Quantity: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
