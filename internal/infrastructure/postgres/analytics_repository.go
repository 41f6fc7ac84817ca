package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only del dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetCounts devuelve los totales del dashboard en una sola consulta.
func (r *AnalyticsRepo) GetCounts() (*repository.DashboardCounts, error) {
	var counts repository.DashboardCounts
	err := r.q.QueryRow(context.Background(), `
		SELECT
			(SELECT count(*) FROM products),
			(SELECT count(*) FROM customers WHERE active),
			(SELECT count(*) FROM suppliers WHERE active)`,
	).Scan(&counts.TotalProducts, &counts.TotalCustomers, &counts.TotalSuppliers)
	if err != nil {
		return nil, fmt.Errorf("dashboard counts: %w", err)
	}
	return &counts, nil
}
