// Package costing implementa el registro de refinamientos de costo: CRUD de
// costos de producción protegido por el flag de bloqueo, agrupación por
// código y el bloqueo atómico por código usado por la liquidación de ventas.
package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/costing"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// RegistryUseCase casos de uso del registro de costos.
type RegistryUseCase struct {
	costRepo    repository.ProductionCostRepository
	productRepo repository.ProductRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(costRepo repository.ProductionCostRepository, productRepo repository.ProductRepository) *RegistryUseCase {
	return &RegistryUseCase{costRepo: costRepo, productRepo: productRepo}
}

// CreateCost registra un nuevo costo de producción (nace desbloqueado).
func (uc *RegistryUseCase) CreateCost(ctx context.Context, in dto.CreateCostRequest) (*entity.ProductionCost, error) {
	if in.Value.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	cost := &entity.ProductionCost{
		ID:             uuid.New().String(),
		ProductID:      in.ProductID,
		Description:    in.Description,
		CostType:       in.CostType,
		Value:          in.Value,
		Date:           in.Date,
		RefinementCode: in.RefinementCode,
		RefinementName: in.RefinementName,
		Notes:          in.Notes,
		CreatedAt:      time.Now(),
	}
	if err := uc.costRepo.Create(cost); err != nil {
		return nil, err
	}
	return cost, nil
}

// UpdateCost edita un costo. Falla con ErrLocked si está bloqueado: Value,
// CostType y RefinementCode son inmutables tras el bloqueo.
func (uc *RegistryUseCase) UpdateCost(ctx context.Context, id string, in dto.UpdateCostRequest) (*entity.ProductionCost, error) {
	cost, err := uc.costRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cost == nil {
		return nil, domain.ErrNotFound
	}
	if cost.IsLocked {
		return nil, domain.ErrLocked
	}
	if in.Value.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	cost.Description = in.Description
	cost.CostType = in.CostType
	cost.Value = in.Value
	cost.Date = in.Date
	cost.RefinementCode = in.RefinementCode
	cost.RefinementName = in.RefinementName
	cost.Notes = in.Notes
	if err := uc.costRepo.Update(cost); err != nil {
		return nil, err
	}
	return cost, nil
}

// DeleteCost elimina un costo. Falla con ErrLocked si está bloqueado.
func (uc *RegistryUseCase) DeleteCost(ctx context.Context, id string) error {
	cost, err := uc.costRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cost == nil {
		return domain.ErrNotFound
	}
	if cost.IsLocked {
		return domain.ErrLocked
	}
	return uc.costRepo.Delete(id)
}

// GetCost obtiene un costo por ID.
func (uc *RegistryUseCase) GetCost(ctx context.Context, id string) (*entity.ProductionCost, error) {
	cost, err := uc.costRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cost == nil {
		return nil, domain.ErrNotFound
	}
	return cost, nil
}

// ListCosts lista costos con filtros.
func (uc *RegistryUseCase) ListCosts(ctx context.Context, filter repository.CostFilter) ([]*entity.ProductionCost, error) {
	return uc.costRepo.List(filter)
}

// ListRefinements agrupa los costos con código por refinamiento, con su
// total agregado y estado de bloqueo, enriquecidos con nombre y código del
// producto para la capa de reportes.
func (uc *RegistryUseCase) ListRefinements(ctx context.Context, productID string, includeLocked bool) ([]*entity.Refinement, error) {
	costs, err := uc.costRepo.ListWithRefinement(productID, includeLocked)
	if err != nil {
		return nil, err
	}
	refs := costing.GroupRefinements(costs)
	for _, ref := range refs {
		product, err := uc.productRepo.GetByID(ref.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			ref.ProductName = product.Name
			ref.ProductCode = product.Code
		}
	}
	return refs, nil
}

// LockRefinementInTx bloquea todos los costos aún desbloqueados del código
// usando el repositorio del caller (misma transacción de la liquidación).
// Idempotente: sobre un grupo ya bloqueado no toca ninguna fila; sobre un
// grupo parcialmente bloqueado completa el bloqueo con la misma venta.
func (uc *RegistryUseCase) LockRefinementInTx(
	costRepo repository.ProductionCostRepository,
	code, saleID string,
	at time.Time,
) (int64, error) {
	if code == "" {
		// Costo informal: sin código no hay nada que bloquear, y no es error.
		return 0, nil
	}
	return costRepo.LockByRefinementCode(code, saleID, at)
}
