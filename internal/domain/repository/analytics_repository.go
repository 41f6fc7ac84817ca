package repository

// DashboardCounts totales del dashboard (consultas read-only agregadas).
type DashboardCounts struct {
	TotalProducts  int
	TotalCustomers int // solo activos
	TotalSuppliers int // solo activos
}

// AnalyticsRepository define el puerto de consultas agregadas del dashboard.
type AnalyticsRepository interface {
	GetCounts() (*DashboardCounts, error)
}
