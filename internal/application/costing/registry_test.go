package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/erp-api/internal/application/costing"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCostRepo struct {
	costs map[string]*entity.ProductionCost
}

func newFakeCostRepo(costs ...*entity.ProductionCost) *fakeCostRepo {
	f := &fakeCostRepo{costs: map[string]*entity.ProductionCost{}}
	for _, c := range costs {
		f.costs[c.ID] = c
	}
	return f
}

func (f *fakeCostRepo) Create(c *entity.ProductionCost) error { f.costs[c.ID] = c; return nil }
func (f *fakeCostRepo) GetByID(id string) (*entity.ProductionCost, error) {
	c, ok := f.costs[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (f *fakeCostRepo) Update(c *entity.ProductionCost) error {
	if existing, ok := f.costs[c.ID]; ok && existing.IsLocked {
		return domain.ErrLocked
	}
	f.costs[c.ID] = c
	return nil
}
func (f *fakeCostRepo) Delete(id string) error {
	if existing, ok := f.costs[id]; ok && existing.IsLocked {
		return domain.ErrLocked
	}
	delete(f.costs, id)
	return nil
}
func (f *fakeCostRepo) List(filter repository.CostFilter) ([]*entity.ProductionCost, error) {
	var out []*entity.ProductionCost
	for _, c := range f.costs {
		if filter.ProductID != "" && c.ProductID != filter.ProductID {
			continue
		}
		if filter.RefinementCode != "" && c.RefinementCode != filter.RefinementCode {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCostRepo) ListByRefinementCode(code string) ([]*entity.ProductionCost, error) {
	var out []*entity.ProductionCost
	for _, c := range f.costs {
		if c.RefinementCode == code {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCostRepo) ListWithRefinement(productID string, includeLocked bool) ([]*entity.ProductionCost, error) {
	var out []*entity.ProductionCost
	for _, c := range f.costs {
		if c.RefinementCode == "" {
			continue
		}
		if productID != "" && c.ProductID != productID {
			continue
		}
		if !includeLocked && c.IsLocked {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeCostRepo) LockByRefinementCode(code, saleID string, at time.Time) (int64, error) {
	var locked int64
	for _, c := range f.costs {
		if c.RefinementCode == code && !c.IsLocked {
			c.IsLocked = true
			c.LockedBySaleID = saleID
			lockedAt := at
			c.LockedAt = &lockedAt
			locked++
		}
	}
	return locked, nil
}

type stubProductRepo struct{ products map[string]*entity.Product }

func (s *stubProductRepo) Create(*entity.Product) error { return nil }
func (s *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return s.products[id], nil
}
func (s *stubProductRepo) GetByCode(string) (*entity.Product, error)          { return nil, nil }
func (s *stubProductRepo) GetForUpdate(id string) (*entity.Product, error)    { return s.products[id], nil }
func (s *stubProductRepo) Update(*entity.Product) error                       { return nil }
func (s *stubProductRepo) UpdateStock(string, decimal.Decimal) error          { return nil }
func (s *stubProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) ListLowStock(int) ([]*entity.Product, error) { return nil, nil }
func (s *stubProductRepo) Delete(string) error                         { return nil }

func newRegistryFixture() (*appcosting.RegistryUseCase, *fakeCostRepo) {
	costs := newFakeCostRepo(
		&entity.ProductionCost{ID: "c1", ProductID: "p1", CostType: "material", Value: d("10.00"), RefinementCode: "R1", RefinementName: "Lote 1"},
		&entity.ProductionCost{ID: "c2", ProductID: "p1", CostType: "labor", Value: d("5.00"), RefinementCode: "R1", RefinementName: "Lote 1"},
	)
	products := &stubProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Code: "PRD-001", Name: "Producto Uno"},
	}}
	return appcosting.NewRegistryUseCase(costs, products), costs
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Dos costos bajo "R1" (10.00 y 5.00): un solo grupo, total 15.00, sin bloquear.
func TestListRefinements_AgrupaYTotaliza(t *testing.T) {
	uc, _ := newRegistryFixture()

	refs, err := uc.ListRefinements(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, "R1", ref.Code)
	assert.True(t, ref.Total.Equal(d("15.00")))
	assert.False(t, ref.IsLocked)
	assert.Equal(t, "Producto Uno", ref.ProductName)
	assert.Equal(t, "PRD-001", ref.ProductCode)
	assert.Len(t, ref.Costs, 2)
}

// includeLocked=false oculta los grupos ya bloqueados.
func TestListRefinements_ExcluyeBloqueados(t *testing.T) {
	uc, costs := newRegistryFixture()
	_, err := costs.LockByRefinementCode("R1", "s1", time.Now())
	require.NoError(t, err)

	refs, err := uc.ListRefinements(context.Background(), "", false)
	require.NoError(t, err)
	assert.Empty(t, refs)

	refs, err = uc.ListRefinements(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].IsLocked)
	assert.Equal(t, "s1", refs[0].LockedBySaleID)
}

// El bloqueo es idempotente y monotónico: re-bloquear no toca filas y nunca
// cambia la venta propietaria.
func TestLockRefinementInTx_Idempotente(t *testing.T) {
	uc, costs := newRegistryFixture()
	now := time.Now()

	locked, err := uc.LockRefinementInTx(costs, "R1", "venta-1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, locked)

	// Segunda pasada: grupo completo ya bloqueado, cero filas afectadas.
	locked, err = uc.LockRefinementInTx(costs, "R1", "venta-2", now)
	require.NoError(t, err)
	assert.EqualValues(t, 0, locked)

	c1, _ := costs.GetByID("c1")
	assert.Equal(t, "venta-1", c1.LockedBySaleID, "la primera venta conserva la propiedad del bloqueo")
}

// Grupo parcialmente bloqueado: el resto se bloquea con la venta que llega.
func TestLockRefinementInTx_CompletaGrupoParcial(t *testing.T) {
	uc, costs := newRegistryFixture()
	now := time.Now()

	// Pre-condición anómala: c1 bloqueado a mano
	c1 := costs.costs["c1"]
	c1.IsLocked = true
	c1.LockedBySaleID = "venta-0"

	locked, err := uc.LockRefinementInTx(costs, "R1", "venta-1", now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, locked, "solo el miembro desbloqueado se toca")
	c2, _ := costs.GetByID("c2")
	assert.Equal(t, "venta-1", c2.LockedBySaleID)
}

func TestLockRefinementInTx_SinCodigoEsNoOp(t *testing.T) {
	uc, costs := newRegistryFixture()
	locked, err := uc.LockRefinementInTx(costs, "", "venta-1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, locked)
}

// Editar o borrar un costo bloqueado falla con ErrLocked.
func TestUpdateDelete_CostoBloqueado(t *testing.T) {
	uc, costs := newRegistryFixture()
	_, err := costs.LockByRefinementCode("R1", "s1", time.Now())
	require.NoError(t, err)

	_, err = uc.UpdateCost(context.Background(), "c1", dto.UpdateCostRequest{
		Description: "x", CostType: "material", Value: d("99.00"), Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrLocked)

	err = uc.DeleteCost(context.Background(), "c1")
	assert.ErrorIs(t, err, domain.ErrLocked)

	// El valor nunca cambió
	c1, _ := costs.GetByID("c1")
	assert.True(t, c1.Value.Equal(d("10.00")))
}

func TestCreateCost_ProductoInexistente(t *testing.T) {
	uc, _ := newRegistryFixture()
	_, err := uc.CreateCost(context.Background(), dto.CreateCostRequest{
		ProductID: "nope", Description: "x", CostType: "material", Value: d("1.00"), Date: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
