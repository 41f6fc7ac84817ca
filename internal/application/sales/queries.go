package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// GetSale devuelve la venta con sus ítems.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// ListSales lista ventas con filtros de estado, cliente y búsqueda.
func (uc *UseCase) ListSales(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	return uc.saleRepo.List(filter)
}

// ListRecent devuelve las últimas ventas creadas, para el dashboard.
func (uc *UseCase) ListRecent(ctx context.Context, limit int) ([]*entity.Sale, error) {
	if limit <= 0 {
		limit = 10
	}
	return uc.saleRepo.ListRecent(limit)
}

// NextNumber devuelve el próximo número de venta sin reservarlo. El número
// definitivo se asigna dentro de la transacción de creación.
func (uc *UseCase) NextNumber(ctx context.Context) (string, error) {
	return nextNumber(uc.saleRepo)
}

// nextNumber calcula el siguiente número secuencial a partir del último
// emitido, con relleno a cinco dígitos ("00001", "00002", ...).
func nextNumber(saleRepo repository.SaleRepository) (string, error) {
	last, err := saleRepo.LastNumber()
	if err != nil {
		return "", err
	}
	seq := 0
	if last != "" {
		// Tolera prefijos no numéricos conservando solo el sufijo de dígitos.
		digits := last
		if idx := strings.LastIndexFunc(last, func(r rune) bool { return r < '0' || r > '9' }); idx >= 0 {
			digits = last[idx+1:]
		}
		if n, convErr := strconv.Atoi(digits); convErr == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%05d", seq+1), nil
}

// DeleteSale elimina una venta no liquidada con sus ítems. Una venta
// liquidada es un registro histórico y no puede borrarse.
func (uc *UseCase) DeleteSale(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusSettled {
		return domain.ErrLocked
	}
	return uc.saleRepo.Delete(id)
}
