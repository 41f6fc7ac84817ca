// Package fiscal genera el documento XML de una venta para intercambio con
// sistemas contables externos.
package fiscal

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain/entity"
)

var _ sales.FiscalExporter = (*XMLBuilder)(nil)

// XMLBuilder construye el XML de venta.
type XMLBuilder struct{}

// NewXMLBuilder crea el builder.
func NewXMLBuilder() *XMLBuilder {
	return &XMLBuilder{}
}

// Build genera el documento XML de la venta y devuelve sus bytes.
func (b *XMLBuilder) Build(sale *entity.Sale, company *entity.Company, customer *entity.Customer, items []sales.ReceiptItem) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("fiscal: venta requerida")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SaleDocument")
	root.CreateAttr("version", "1.0")
	root.CreateAttr("generatedAt", time.Now().UTC().Format(time.RFC3339))

	header := root.CreateElement("Header")
	header.CreateElement("Number").SetText(sale.Number)
	header.CreateElement("Date").SetText(sale.Date.Format("2006-01-02"))
	header.CreateElement("Status").SetText(sale.Status)
	if sale.PaymentMethod != "" {
		header.CreateElement("PaymentMethod").SetText(sale.PaymentMethod)
	}

	if company != nil {
		issuer := root.CreateElement("Issuer")
		issuer.CreateElement("Name").SetText(company.Name)
		if company.Document != "" {
			issuer.CreateElement("Document").SetText(company.Document)
		}
		if company.Address != "" {
			issuer.CreateElement("Address").SetText(company.Address)
		}
	}

	if customer != nil {
		buyer := root.CreateElement("Customer")
		buyer.CreateElement("Name").SetText(customer.Name)
		if customer.Document != "" {
			buyer.CreateElement("Document").SetText(customer.Document)
		}
	}

	lines := root.CreateElement("Items")
	for i, item := range items {
		line := lines.CreateElement("Item")
		line.CreateAttr("line", fmt.Sprintf("%d", i+1))
		if item.ProductCode != "" {
			line.CreateElement("Code").SetText(item.ProductCode)
		}
		line.CreateElement("Description").SetText(item.ProductName)
		line.CreateElement("Quantity").SetText(item.Quantity.String())
		line.CreateElement("UnitPrice").SetText(item.UnitPrice.StringFixed(2))
		line.CreateElement("Discount").SetText(item.Discount.StringFixed(2))
		line.CreateElement("Subtotal").SetText(item.TotalPrice.StringFixed(2))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Total").SetText(sale.TotalAmount.StringFixed(2))
	totals.CreateElement("Discount").SetText(sale.Discount.StringFixed(2))
	totals.CreateElement("FinalAmount").SetText(sale.FinalAmount.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("fiscal: serializar documento: %w", err)
	}
	return out, nil
}
