package dto

// DashboardResponse resumen para la pantalla principal.
type DashboardResponse struct {
	TotalProducts   int                `json:"totalProducts"`
	TotalCustomers  int                `json:"totalCustomers"`
	TotalSuppliers  int                `json:"totalSuppliers"`
	LowStockProducts []ProductResponse `json:"lowStockProducts"`
	RecentMovements []MovementResponse `json:"recentMovements"`
	RecentSales     []SaleResponse     `json:"recentSales"`
}
