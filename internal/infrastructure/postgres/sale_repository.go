package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, number, customer_id, date, total_amount, discount, final_amount, payment_method, status, notes, created_at`
const saleItemColumns = `id, sale_id, product_id, quantity, unit_price, unit_cost, discount, tax, freight, total_price, total_cost, profit, cost_refinement_code, cost_snapshot, cost_calculated_at`

// SaleRepo implementación sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, paymentMethod, notes *string
	err := row.Scan(
		&s.ID, &s.Number, &customerID, &s.Date, &s.TotalAmount, &s.Discount,
		&s.FinalAmount, &paymentMethod, &s.Status, &notes, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	if paymentMethod != nil {
		s.PaymentMethod = *paymentMethod
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}

func scanSaleItem(row pgx.Row) (*entity.SaleItem, error) {
	var i entity.SaleItem
	var refCode *string
	var snapshot []byte
	err := row.Scan(
		&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice, &i.UnitCost,
		&i.Discount, &i.Tax, &i.Freight, &i.TotalPrice, &i.TotalCost, &i.Profit,
		&refCode, &snapshot, &i.CostCalculatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refCode != nil {
		i.CostRefinementCode = *refCode
	}
	if len(snapshot) > 0 {
		var snap entity.CostSnapshot
		if err := json.Unmarshal(snapshot, &snap); err != nil {
			return nil, fmt.Errorf("decode cost snapshot: %w", err)
		}
		i.CostSnapshot = &snap
	}
	return &i, nil
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, number, customer_id, date, total_amount, discount, final_amount, payment_method, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Number, nullable(sale.CustomerID), sale.Date, sale.TotalAmount,
		sale.Discount, sale.FinalAmount, nullable(sale.PaymentMethod), sale.Status,
		nullable(sale.Notes), sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta. El snapshot nace vacío y se
// escribe después vía SetItemSnapshot.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, unit_cost, discount, tax, freight, total_price, total_cost, profit, cost_refinement_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice,
		item.UnitCost, item.Discount, item.Tax, item.Freight, item.TotalPrice,
		item.TotalCost, item.Profit, nullable(item.CostRefinementCode),
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate bloquea la cabecera de la venta para serializar liquidaciones
// concurrentes. Solo tiene sentido dentro de una transacción.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return s, nil
}

// Update actualiza la cabecera de la venta.
func (r *SaleRepo) Update(sale *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $2, date = $3, total_amount = $4, discount = $5,
			final_amount = $6, payment_method = $7, status = $8, notes = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, nullable(sale.CustomerID), sale.Date, sale.TotalAmount, sale.Discount,
		sale.FinalAmount, nullable(sale.PaymentMethod), sale.Status, nullable(sale.Notes),
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la venta; los ítems caen en cascada.
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// List lista ventas con filtros de estado, cliente y búsqueda por número.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	var args []any
	pos := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.CustomerID != "" {
		query += fmt.Sprintf(" AND customer_id = $%d", pos)
		args = append(args, filter.CustomerID)
		pos++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND number ILIKE $%d", pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListRecent devuelve las últimas ventas creadas.
func (r *SaleRepo) ListRecent(limit int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListItems devuelve los ítems de una venta.
func (r *SaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		item, err := scanSaleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// SetItemSnapshot escribe el snapshot solo si la columna sigue vacía
// (write-once a nivel SQL). Devuelve false si el ítem ya tenía snapshot.
func (r *SaleRepo) SetItemSnapshot(itemID string, snapshot *entity.CostSnapshot, at time.Time) (bool, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return false, fmt.Errorf("encode cost snapshot: %w", err)
	}
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE sale_items
		SET cost_snapshot = $2, cost_calculated_at = $3
		WHERE id = $1 AND cost_snapshot IS NULL`,
		itemID, payload, at,
	)
	if err != nil {
		return false, fmt.Errorf("set item snapshot: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// LastNumber devuelve el número de la última venta creada ("" si no hay).
func (r *SaleRepo) LastNumber() (string, error) {
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT number FROM sales ORDER BY created_at DESC LIMIT 1`).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last sale number: %w", err)
	}
	return number, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
