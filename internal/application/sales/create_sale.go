package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/costing"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	domcosting "github.com/jhoicas/erp-api/internal/domain/costing"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de las ventas: creación con descuento de
// stock por ítem, consultas y transición de estado con liquidación.
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
	ledger   *inventory.StockLedgerUseCase
	registry *costing.RegistryUseCase
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	ledger *inventory.StockLedgerUseCase,
	registry *costing.RegistryUseCase,
) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo, ledger: ledger, registry: registry}
}

// CreateSale crea la venta con sus ítems en una sola transacción:
//
//  1. calcula los derivados de cada ítem y el total de la cabecera,
//  2. registra un movimiento "out" por ítem referenciando la venta,
//  3. captura el snapshot de costos de los ítems con código de refinamiento
//     (el bloqueo de esos costos ocurre recién al liquidar),
//  4. si la venta nace liquidada aplica además los efectos de liquidación.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Sale, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SaleStatusDisputed
	}
	if !entity.ValidSaleStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidQuantity
		}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Number:        in.Number,
		CustomerID:    in.CustomerID,
		Date:          in.Date,
		Discount:      in.Discount,
		PaymentMethod: in.PaymentMethod,
		Status:        status,
		Notes:         in.Notes,
		CreatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		costRepo repository.ProductionCostRepository,
	) error {
		if sale.Number == "" {
			number, err := nextNumber(saleRepo)
			if err != nil {
				return err
			}
			sale.Number = number
		}

		total := decimal.Zero
		items := make([]*entity.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			item := &entity.SaleItem{
				ID:                 uuid.New().String(),
				SaleID:             sale.ID,
				ProductID:          it.ProductID,
				Quantity:           it.Quantity,
				UnitPrice:          it.UnitPrice,
				UnitCost:           it.UnitCost,
				Discount:           it.Discount,
				Tax:                it.Tax,
				Freight:            it.Freight,
				CostRefinementCode: it.CostRefinementCode,
			}
			item.ComputeDerived()
			total = total.Add(item.TotalPrice)
			items = append(items, item)
		}
		sale.TotalAmount = total
		sale.ComputeFinalAmount()
		sale.Items = items

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			unitPrice := item.UnitPrice
			if _, _, err := uc.ledger.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID:     item.ProductID,
				Type:          entity.MovementTypeOut,
				Quantity:      item.Quantity,
				UnitPrice:     &unitPrice,
				ReferenceType: entity.ReferenceTypeSale,
				ReferenceID:   sale.ID,
				Notes:         "Venta " + sale.Number,
			}, now); err != nil {
				return err
			}
			if err := captureSnapshot(saleRepo, costRepo, item, now); err != nil {
				return err
			}
		}

		if status == entity.SaleStatusSettled {
			return uc.settleInTx(saleRepo, costRepo, sale, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// captureSnapshot escribe el snapshot de costos del ítem si referencia un
// refinamiento y aún no tiene uno. Respeta write-once: si la columna ya está
// poblada no la toca.
func captureSnapshot(
	saleRepo repository.SaleRepository,
	costRepo repository.ProductionCostRepository,
	item *entity.SaleItem,
	now time.Time,
) error {
	if item.CostRefinementCode == "" || item.CostSnapshot != nil {
		return nil
	}
	costs, err := costRepo.ListByRefinementCode(item.CostRefinementCode)
	if err != nil {
		return err
	}
	snap := domcosting.BuildSnapshot(item.CostRefinementCode, costs, now)
	written, err := saleRepo.SetItemSnapshot(item.ID, snap, now)
	if err != nil {
		return err
	}
	if written {
		item.CostSnapshot = snap
		at := now
		item.CostCalculatedAt = &at
	}
	return nil
}
