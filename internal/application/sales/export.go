package sales

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// FiscalExporter define el puerto de exportación XML de una venta.
type FiscalExporter interface {
	Build(sale *entity.Sale, company *entity.Company, customer *entity.Customer, items []ReceiptItem) ([]byte, error)
}

// ExportXML genera el documento XML de la venta para sistemas contables
// externos. Reutiliza la carga de datos del comprobante.
func (uc *ReceiptUseCase) ExportXML(ctx context.Context, saleID string) ([]byte, error) {
	sale, company, customer, items, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.exporter.Build(sale, company, customer, items)
}
