package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ReceiptItem línea de venta enriquecida con los datos del producto para el
// comprobante y la exportación fiscal.
type ReceiptItem struct {
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

// ReceiptGenerator define el puerto de generación del comprobante de venta.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, sale *entity.Sale, company *entity.Company, customer *entity.Customer, items []ReceiptItem) ([]byte, error)
}

// ReceiptUseCase genera los documentos de una venta: comprobante PDF y
// exportación XML.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	generator    ReceiptGenerator
	exporter     FiscalExporter
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	generator ReceiptGenerator,
	exporter FiscalExporter,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		generator:    generator,
		exporter:     exporter,
	}
}

// GenerateReceipt genera el PDF del comprobante de la venta.
func (uc *ReceiptUseCase) GenerateReceipt(ctx context.Context, saleID string) ([]byte, error) {
	sale, company, customer, items, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateReceipt(ctx, sale, company, customer, items)
}

// load reúne venta, empresa, cliente e ítems enriquecidos con producto.
func (uc *ReceiptUseCase) load(ctx context.Context, saleID string) (*entity.Sale, *entity.Company, *entity.Customer, []ReceiptItem, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if sale == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(saleID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	receiptItems := make([]ReceiptItem, 0, len(items))
	for _, item := range items {
		ri := ReceiptItem{
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   item.Discount,
			TotalPrice: item.TotalPrice,
		}
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			ri.ProductCode = product.Code
			ri.ProductName = product.Name
		}
		receiptItems = append(receiptItems, ri)
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(sale.CustomerID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	company, err := uc.companyRepo.Get()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return sale, company, customer, receiptItems, nil
}
