package sales_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/costing"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por las fakes, con snapshot/restore para
// simular el rollback transaccional.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	costs     map[string]*entity.ProductionCost
	sales     map[string]*entity.Sale
	items     map[string]*entity.SaleItem

	failCreateItemAfter int // > 0: CreateItem falla tras N llamadas
	createItemCalls     int

	failSetSnapshotAfter int // > 0: SetItemSnapshot falla tras N llamadas
	setSnapshotCalls     int
}

func newStore() *store {
	return &store{
		products: map[string]*entity.Product{},
		costs:    map[string]*entity.ProductionCost{},
		sales:    map[string]*entity.Sale{},
		items:    map[string]*entity.SaleItem{},
	}
}

func (s *store) snapshot() *store {
	cp := newStore()
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for _, m := range s.movements {
		mv := *m
		cp.movements = append(cp.movements, &mv)
	}
	for k, v := range s.costs {
		c := *v
		cp.costs[k] = &c
	}
	for k, v := range s.sales {
		sl := *v
		cp.sales[k] = &sl
	}
	for k, v := range s.items {
		it := *v
		cp.items[k] = &it
	}
	return cp
}

func (s *store) restore(from *store) {
	s.products = from.products
	s.movements = from.movements
	s.costs = from.costs
	s.sales = from.sales
	s.items = from.items
}

type fakeProductRepo struct{ s *store }

func (f *fakeProductRepo) Create(p *entity.Product) error { f.s.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.s.products[id], nil
}
func (f *fakeProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.s.products[id], nil
}
func (f *fakeProductRepo) Update(*entity.Product) error { return nil }
func (f *fakeProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	p, ok := f.s.products[id]
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
func (f *fakeProductRepo) Delete(string) error                         { return nil }

type fakeMovementRepo struct{ s *store }

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.s.movements = append(f.s.movements, m)
	return nil
}
func (f *fakeMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (f *fakeMovementRepo) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return f.s.movements, nil
}
func (f *fakeMovementRepo) ListRecent(int) ([]*entity.StockMovement, error) {
	return f.s.movements, nil
}

type fakeCostRepo struct{ s *store }

func (f *fakeCostRepo) Create(c *entity.ProductionCost) error { f.s.costs[c.ID] = c; return nil }
func (f *fakeCostRepo) GetByID(id string) (*entity.ProductionCost, error) {
	return f.s.costs[id], nil
}
func (f *fakeCostRepo) Update(c *entity.ProductionCost) error { f.s.costs[c.ID] = c; return nil }
func (f *fakeCostRepo) Delete(id string) error                { delete(f.s.costs, id); return nil }
func (f *fakeCostRepo) List(repository.CostFilter) ([]*entity.ProductionCost, error) {
	return nil, nil
}
func (f *fakeCostRepo) ListByRefinementCode(code string) ([]*entity.ProductionCost, error) {
	var out []*entity.ProductionCost
	for _, c := range f.s.costs {
		if c.RefinementCode == code {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeCostRepo) ListWithRefinement(string, bool) ([]*entity.ProductionCost, error) {
	return nil, nil
}
func (f *fakeCostRepo) LockByRefinementCode(code, saleID string, at time.Time) (int64, error) {
	var n int64
	for _, c := range f.s.costs {
		if c.RefinementCode == code && !c.IsLocked {
			c.IsLocked = true
			c.LockedBySaleID = saleID
			lockedAt := at
			c.LockedAt = &lockedAt
			n++
		}
	}
	return n, nil
}

type fakeSaleRepo struct{ s *store }

func (f *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Items = nil
	f.s.sales[sale.ID] = &cp
	return nil
}
func (f *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	f.s.createItemCalls++
	if f.s.failCreateItemAfter > 0 && f.s.createItemCalls > f.s.failCreateItemAfter {
		return errors.New("fallo inyectado")
	}
	cp := *item
	f.s.items[item.ID] = &cp
	return nil
}
func (f *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := f.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}
func (f *fakeSaleRepo) GetForUpdate(id string) (*entity.Sale, error) { return f.GetByID(id) }
func (f *fakeSaleRepo) Update(sale *entity.Sale) error {
	f.s.sales[sale.ID] = sale
	return nil
}
func (f *fakeSaleRepo) UpdateStatus(id, status string) error {
	sale, ok := f.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	sale.Status = status
	return nil
}
func (f *fakeSaleRepo) Delete(id string) error {
	delete(f.s.sales, id)
	for itemID, item := range f.s.items {
		if item.SaleID == id {
			delete(f.s.items, itemID)
		}
	}
	return nil
}
func (f *fakeSaleRepo) List(repository.SaleFilter) ([]*entity.Sale, error) { return nil, nil }
func (f *fakeSaleRepo) ListRecent(int) ([]*entity.Sale, error)             { return nil, nil }
func (f *fakeSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, item := range f.s.items {
		if item.SaleID == saleID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (f *fakeSaleRepo) SetItemSnapshot(itemID string, snapshot *entity.CostSnapshot, at time.Time) (bool, error) {
	f.s.setSnapshotCalls++
	if f.s.failSetSnapshotAfter > 0 && f.s.setSnapshotCalls > f.s.failSetSnapshotAfter {
		return false, errors.New("fallo inyectado")
	}
	item, ok := f.s.items[itemID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if item.CostSnapshot != nil {
		return false, nil
	}
	item.CostSnapshot = snapshot
	calcAt := at
	item.CostCalculatedAt = &calcAt
	return true, nil
}
func (f *fakeSaleRepo) LastNumber() (string, error) {
	last := ""
	for _, sale := range f.s.sales {
		if sale.Number > last {
			last = sale.Number
		}
	}
	return last, nil
}

// fakeTxRunner toma un snapshot del almacén antes de fn y lo restaura si fn
// falla, imitando el rollback de una transacción real.
type fakeTxRunner struct{ s *store }

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	costRepo repository.ProductionCostRepository,
) error) error {
	before := f.s.snapshot()
	err := fn(&fakeSaleRepo{f.s}, &fakeMovementRepo{f.s}, &fakeProductRepo{f.s}, &fakeCostRepo{f.s})
	if err != nil {
		f.s.restore(before)
	}
	return err
}

type invTxRunner struct{ s *store }

func (f *invTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	before := f.s.snapshot()
	err := fn(&fakeMovementRepo{f.s}, &fakeProductRepo{f.s})
	if err != nil {
		f.s.restore(before)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un producto con stock 100 y dos costos de producción bajo "R1".
// ──────────────────────────────────────────────────────────────────────────────

func newFixture() (*sales.UseCase, *store) {
	s := newStore()
	s.products["p1"] = &entity.Product{ID: "p1", Code: "PRD-001", Name: "Producto Uno", CurrentStock: d("100")}
	s.costs["c1"] = &entity.ProductionCost{ID: "c1", ProductID: "p1", CostType: "material", Value: d("10.00"), RefinementCode: "R1"}
	s.costs["c2"] = &entity.ProductionCost{ID: "c2", ProductID: "p1", CostType: "labor", Value: d("5.00"), RefinementCode: "R1"}

	ledgerUC := inventory.NewStockLedgerUseCase(&invTxRunner{s}, &fakeMovementRepo{s})
	registryUC := costing.NewRegistryUseCase(&fakeCostRepo{s}, &fakeProductRepo{s})
	uc := sales.NewUseCase(&fakeTxRunner{s}, &fakeSaleRepo{s}, ledgerUC, registryUC)
	return uc, s
}

func itemsOf(s *store, saleID string) []*entity.SaleItem {
	var out []*entity.SaleItem
	for _, item := range s.items {
		if item.SaleID == saleID {
			out = append(out, item)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DerivadosYMovimiento(t *testing.T) {
	uc, s := newFixture()

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date:     time.Now(),
		Discount: d("1.00"),
		Items: []dto.CreateSaleItemRequest{{
			ProductID: "p1",
			Quantity:  d("2"),
			UnitPrice: d("25.00"),
			UnitCost:  d("7.50"),
			Discount:  d("2.00"),
			Tax:       d("3.00"),
			Freight:   d("1.00"),
		}},
	})
	require.NoError(t, err)

	// Derivados del ítem: 2·25 − 2 = 48; costo 2·7.50 = 15; ganancia 48−15−3−1 = 29
	items := itemsOf(s, sale.ID)
	require.Len(t, items, 1)
	assert.True(t, items[0].TotalPrice.Equal(d("48.00")))
	assert.True(t, items[0].TotalCost.Equal(d("15.00")))
	assert.True(t, items[0].Profit.Equal(d("29.00")))

	// Cabecera: total 48, final 48 − 1 = 47
	assert.True(t, sale.TotalAmount.Equal(d("48.00")))
	assert.True(t, sale.FinalAmount.Equal(d("47.00")))
	assert.Equal(t, entity.SaleStatusDisputed, sale.Status)

	// Un movimiento "out" referenciando la venta, stock 100 → 98
	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypeOut, mov.Type)
	assert.Equal(t, entity.ReferenceTypeSale, mov.ReferenceType)
	assert.Equal(t, sale.ID, mov.ReferenceID)
	assert.True(t, s.products["p1"].CurrentStock.Equal(d("98")))
}

func TestCreateSale_NumeracionSecuencial(t *testing.T) {
	uc, _ := newFixture()

	first, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date:  time.Now(),
		Items: []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: d("1"), UnitPrice: d("10.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "00001", first.Number)

	second, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date:  time.Now(),
		Items: []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: d("1"), UnitPrice: d("10.00")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "00002", second.Number)

	next, err := uc.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "00003", next)
}

// El snapshot se captura al crear el ítem con código de refinamiento, sin
// bloquear los costos todavía.
func TestCreateSale_SnapshotSinBloqueo(t *testing.T) {
	uc, s := newFixture()

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date: time.Now(),
		Items: []dto.CreateSaleItemRequest{{
			ProductID:          "p1",
			Quantity:           d("1"),
			UnitPrice:          d("50.00"),
			CostRefinementCode: "R1",
		}},
	})
	require.NoError(t, err)

	items := itemsOf(s, sale.ID)
	require.Len(t, items, 1)
	snap := items[0].CostSnapshot
	require.NotNil(t, snap)
	assert.Equal(t, "R1", snap.RefinementCode)
	assert.True(t, snap.Total.Equal(d("15.00")))
	assert.ElementsMatch(t, []string{"c1", "c2"}, snap.CostIDs)
	assert.True(t, snap.Breakdown["material"].Equal(d("10.00")))
	assert.True(t, snap.Breakdown["labor"].Equal(d("5.00")))

	assert.False(t, s.costs["c1"].IsLocked)
	assert.False(t, s.costs["c2"].IsLocked)
}

func TestCreateSale_RollbackAtomico(t *testing.T) {
	uc, s := newFixture()
	s.failCreateItemAfter = 1 // el segundo ítem falla

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date: time.Now(),
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: d("2"), UnitPrice: d("10.00")},
			{ProductID: "p1", Quantity: d("3"), UnitPrice: d("10.00")},
		},
	})
	require.Error(t, err)

	// Nada quedó persistido: ni venta, ni ítems, ni movimientos, ni stock.
	assert.Empty(t, s.sales)
	assert.Empty(t, s.items)
	assert.Empty(t, s.movements)
	assert.True(t, s.products["p1"].CurrentStock.Equal(d("100")))
}

func TestCreateSale_SinItems(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{Date: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadInvalida(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date:  time.Now(),
		Items: []dto.CreateSaleItemRequest{{ProductID: "p1", Quantity: d("0"), UnitPrice: d("10.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Liquidación
// ──────────────────────────────────────────────────────────────────────────────

func createSaleR1(t *testing.T, uc *sales.UseCase) *entity.Sale {
	t.Helper()
	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date: time.Now(),
		Items: []dto.CreateSaleItemRequest{{
			ProductID:          "p1",
			Quantity:           d("1"),
			UnitPrice:          d("50.00"),
			CostRefinementCode: "R1",
		}},
	})
	require.NoError(t, err)
	return sale
}

func TestTransition_LiquidarBloqueaCostos(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	settled, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusSettled, settled.Status)

	for _, id := range []string{"c1", "c2"} {
		cost := s.costs[id]
		assert.True(t, cost.IsLocked, "costo %s debe quedar bloqueado", id)
		assert.Equal(t, sale.ID, cost.LockedBySaleID)
		assert.NotNil(t, cost.LockedAt)
	}
}

// Re-liquidar es un no-op: devuelve ErrAlreadyFinalized y el snapshot del
// ítem queda byte a byte idéntico.
func TestTransition_ReLiquidarEsNoOp(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	_, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.NoError(t, err)

	before := itemsOf(s, sale.ID)[0].CostSnapshot

	// El costo cambia después del bloqueo (vía fake, simulando corrupción);
	// el snapshot existente jamás se recalcula.
	s.costs["c1"].Value = d("999.00")

	again, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	require.NotNil(t, again)
	assert.Equal(t, entity.SaleStatusSettled, again.Status)

	after := itemsOf(s, sale.ID)[0].CostSnapshot
	assert.Equal(t, before, after)
	assert.Equal(t, sale.ID, s.costs["c1"].LockedBySaleID)
}

// Una venta liquidada es terminal: tampoco admite volver a estados previos.
func TestTransition_LiquidadaEsTerminal(t *testing.T) {
	uc, _ := newFixture()
	sale := createSaleR1(t, uc)

	_, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.NoError(t, err)

	_, err = uc.Transition(context.Background(), sale.ID, entity.SaleStatusApproved)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

// Ítem cuyo snapshot se perdió (columna vacía): la liquidación lo captura.
func TestTransition_CapturaSnapshotFaltante(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	for _, item := range s.items {
		item.CostSnapshot = nil
		item.CostCalculatedAt = nil
	}

	_, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.NoError(t, err)

	snap := itemsOf(s, sale.ID)[0].CostSnapshot
	require.NotNil(t, snap)
	assert.True(t, snap.Total.Equal(d("15.00")))
	assert.ElementsMatch(t, []string{"c1", "c2"}, snap.CostIDs)
}

// La liquidación es atómica: si falla a mitad (segundo snapshot), el estado,
// los bloqueos y el snapshot ya escrito vuelven todos atrás.
func TestTransition_LiquidacionFallidaRevierteTodo(t *testing.T) {
	uc, s := newFixture()
	s.costs["c3"] = &entity.ProductionCost{ID: "c3", ProductID: "p1", CostType: "material", Value: d("8.00"), RefinementCode: "R2"}

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Date: time.Now(),
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: d("1"), UnitPrice: d("50.00"), CostRefinementCode: "R1"},
			{ProductID: "p1", Quantity: d("1"), UnitPrice: d("30.00"), CostRefinementCode: "R2"},
		},
	})
	require.NoError(t, err)

	// Se pierden los snapshots para forzar su recaptura durante la
	// liquidación; la segunda escritura falla dentro de la transacción.
	for _, item := range s.items {
		item.CostSnapshot = nil
		item.CostCalculatedAt = nil
	}
	s.setSnapshotCalls = 0
	s.failSetSnapshotAfter = 1

	_, err = uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.Error(t, err)

	// Nada quedó a medias: ni estado, ni bloqueos, ni el snapshot que sí
	// alcanzó a escribirse.
	assert.Equal(t, entity.SaleStatusDisputed, s.sales[sale.ID].Status)
	for _, id := range []string{"c1", "c2", "c3"} {
		assert.False(t, s.costs[id].IsLocked, "costo %s no debe quedar bloqueado", id)
		assert.Empty(t, s.costs[id].LockedBySaleID)
	}
	for _, item := range itemsOf(s, sale.ID) {
		assert.Nil(t, item.CostSnapshot)
	}
}

func TestTransition_EstadosIntermedios(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	for _, status := range []string{
		entity.SaleStatusApproved,
		entity.SaleStatusInProduction,
		entity.SaleStatusAwaitingPayment,
	} {
		updated, err := uc.Transition(context.Background(), sale.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		// Ningún estado intermedio toca los costos.
		assert.False(t, s.costs["c1"].IsLocked)
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	uc, _ := newFixture()
	sale := createSaleR1(t, uc)
	_, err := uc.Transition(context.Background(), sale.ID, "cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_VentaInexistente(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Transition(context.Background(), "nope", entity.SaleStatusApproved)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_LiquidadaNoSeBorra(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	_, err := uc.Transition(context.Background(), sale.ID, entity.SaleStatusSettled)
	require.NoError(t, err)

	err = uc.DeleteSale(context.Background(), sale.ID)
	assert.ErrorIs(t, err, domain.ErrLocked)
	assert.Contains(t, s.sales, sale.ID)
}

func TestDeleteSale_EliminaConItems(t *testing.T) {
	uc, s := newFixture()
	sale := createSaleR1(t, uc)

	require.NoError(t, uc.DeleteSale(context.Background(), sale.ID))
	assert.NotContains(t, s.sales, sale.ID)
	assert.Empty(t, itemsOf(s, sale.ID))
}
