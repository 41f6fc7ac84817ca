package analytics

import (
	"context"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen de la pantalla principal: totales,
// productos con stock bajo y actividad reciente. Consultas read-only; una
// ligera inconsistencia entre ellas es aceptable.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	movRepo       repository.StockMovementRepository
	saleRepo      repository.SaleRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	saleRepo repository.SaleRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		movRepo:       movRepo,
		saleRepo:      saleRepo,
	}
}

// GetDashboard devuelve los totales, hasta 10 productos con stock bajo, los
// últimos 10 movimientos y las últimas 5 ventas.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	counts, err := uc.analyticsRepo.GetCounts()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.productRepo.ListLowStock(10)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movRepo.ListRecent(10)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.ListRecent(5)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalProducts:    counts.TotalProducts,
		TotalCustomers:   counts.TotalCustomers,
		TotalSuppliers:   counts.TotalSuppliers,
		LowStockProducts: make([]dto.ProductResponse, 0, len(lowStock)),
		RecentMovements:  make([]dto.MovementResponse, 0, len(movements)),
		RecentSales:      make([]dto.SaleResponse, 0, len(sales)),
	}
	for _, p := range lowStock {
		resp.LowStockProducts = append(resp.LowStockProducts, dto.ToProductResponse(p))
	}
	for _, m := range movements {
		resp.RecentMovements = append(resp.RecentMovements, dto.ToMovementResponse(m))
	}
	for _, s := range sales {
		resp.RecentSales = append(resp.RecentSales, dto.ToSaleResponse(s))
	}
	return resp, nil
}
