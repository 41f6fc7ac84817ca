package sales

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando los
// repositorios que participan en el ciclo de vida de una venta atados a esa
// tx. Crear una venta (cabecera, ítems, movimientos de stock) y liquidarla
// (bloqueo de costos, snapshots, cambio de estado) son operaciones todo o
// nada: cualquier error revierte la transacción completa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		costRepo repository.ProductionCostRepository,
	) error) error
}
