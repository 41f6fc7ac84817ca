package sales

import (
	"context"
	"time"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Transition cambia el estado de una venta. Al entrar por primera vez en
// settled dispara la liquidación: bloquea los costos de cada refinamiento
// referenciado por los ítems y captura el snapshot de los que aún no lo
// tienen. Cambio de estado, bloqueos y snapshots son una sola transacción.
//
// Una venta ya liquidada es terminal: cualquier transición posterior devuelve
// ErrAlreadyFinalized y no produce ningún efecto.
func (uc *UseCase) Transition(ctx context.Context, saleID, newStatus string) (*entity.Sale, error) {
	if !entity.ValidSaleStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		costRepo repository.ProductionCostRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusSettled {
			result = sale
			return domain.ErrAlreadyFinalized
		}

		if newStatus == entity.SaleStatusSettled {
			now := time.Now()
			items, err := saleRepo.ListItems(sale.ID)
			if err != nil {
				return err
			}
			sale.Items = items
			if err := uc.settleInTx(saleRepo, costRepo, sale, now); err != nil {
				return err
			}
		}

		if err := saleRepo.UpdateStatus(sale.ID, newStatus); err != nil {
			return err
		}
		sale.Status = newStatus
		result = sale
		return nil
	})
	if err != nil {
		// La venta ya liquidada se devuelve junto al error para que la capa
		// HTTP pueda responderla como no-op.
		if result != nil {
			return result, err
		}
		return nil, err
	}
	return result, nil
}

// settleInTx aplica los efectos de liquidación sobre los ítems de la venta:
// bloqueo monotónico de los costos de cada refinamiento y snapshot write-once
// por ítem. Es idempotente fila a fila, por lo que una liquidación reanudada
// tras contención no duplica efectos.
func (uc *UseCase) settleInTx(
	saleRepo repository.SaleRepository,
	costRepo repository.ProductionCostRepository,
	sale *entity.Sale,
	now time.Time,
) error {
	for _, item := range sale.Items {
		if item.CostRefinementCode == "" {
			continue
		}
		if _, err := uc.registry.LockRefinementInTx(costRepo, item.CostRefinementCode, sale.ID, now); err != nil {
			return err
		}
		if err := captureSnapshot(saleRepo, costRepo, item, now); err != nil {
			return err
		}
	}
	return nil
}
