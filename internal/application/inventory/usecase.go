package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/ledger"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// StockLedgerUseCase aplica movimientos de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), inserta el movimiento
// inmutable y actualiza el cache current_stock en la misma transacción.
type StockLedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *StockLedgerUseCase {
	return &StockLedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para aplicar un movimiento de stock.
type MovementInput struct {
	ProductID     string
	Type          string // in, out, adjust
	Quantity      decimal.Decimal
	UnitPrice     *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Notes         string
}

// Apply registra el movimiento y devuelve el movimiento creado junto con el
// saldo resultante del producto.
//
// Nota: una salida puede dejar el saldo negativo; el libro se mantiene fiel a
// los movimientos registrados y la reconciliación es un ajuste posterior.
// Un caller que exija piso cero debe pre-verificar dentro de la misma tx.
func (uc *StockLedgerUseCase) Apply(ctx context.Context, input MovementInput) (*entity.StockMovement, decimal.Decimal, error) {
	if input.ProductID == "" {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInvalidQuantity
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeAdjust:
	default:
		return nil, decimal.Zero, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		mov        *entity.StockMovement
		newBalance decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, newBalance, err = applyInTx(movRepo, productRepo, input, now)
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return mov, newBalance, nil
}

// ApplyInTx aplica un movimiento usando los repositorios del caller (misma
// transacción). Lo usa la creación de ventas para descontar stock por ítem
// dentro de su propia tx.
func (uc *StockLedgerUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, decimal.Decimal, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, decimal.Zero, domain.ErrInvalidQuantity
	}
	return applyInTx(movRepo, productRepo, input, now)
}

// applyInTx: bloquea la fila del producto, calcula el nuevo saldo con la regla
// de efecto y persiste movimiento + cache como una sola secuencia.
func applyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, decimal.Decimal, error) {
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if product == nil {
		return nil, decimal.Zero, domain.ErrNotFound
	}

	newBalance, err := ledger.Apply(product.CurrentStock, input.Type, input.Quantity)
	if err != nil {
		return nil, decimal.Zero, err
	}

	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		ReferenceType: input.ReferenceType,
		ReferenceID:   input.ReferenceID,
		Notes:         input.Notes,
		CreatedAt:     now,
	}
	if input.UnitPrice != nil {
		total := input.UnitPrice.Mul(input.Quantity)
		mov.TotalPrice = &total
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, decimal.Zero, err
	}
	if err := productRepo.UpdateStock(input.ProductID, newBalance); err != nil {
		return nil, decimal.Zero, err
	}
	return mov, newBalance, nil
}

// ApplyFromRequest adapta el request HTTP al caso de uso.
func (uc *StockLedgerUseCase) ApplyFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*entity.StockMovement, decimal.Decimal, error) {
	return uc.Apply(ctx, MovementInput{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
	})
}

// ListByProduct lista movimientos de un producto (consulta read-only).
func (uc *StockLedgerUseCase) ListByProduct(ctx context.Context, productID, movementType string, limit, offset int) ([]*entity.StockMovement, error) {
	return uc.movRepo.List(repository.MovementFilter{
		ProductID: productID,
		Type:      movementType,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListRecent devuelve los movimientos más recientes.
func (uc *StockLedgerUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.movRepo.ListRecent(limit)
}
