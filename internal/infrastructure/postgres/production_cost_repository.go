package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/textutil"
)

var _ repository.ProductionCostRepository = (*ProductionCostRepo)(nil)

const costColumns = `id, product_id, description, cost_type, value, date, refinement_code, refinement_name, is_locked, locked_by_sale_id, locked_at, notes, created_at`

// ProductionCostRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionCostRepo struct {
	q Querier
}

// NewProductionCostRepository construye el adaptador. Pasar pool o tx
// (Querier).
func NewProductionCostRepository(q Querier) *ProductionCostRepo {
	return &ProductionCostRepo{q: q}
}

func scanCost(row pgx.Row) (*entity.ProductionCost, error) {
	var c entity.ProductionCost
	var refCode, refName, lockedBy, notes *string
	err := row.Scan(
		&c.ID, &c.ProductID, &c.Description, &c.CostType, &c.Value, &c.Date,
		&refCode, &refName, &c.IsLocked, &lockedBy, &c.LockedAt, &notes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refCode != nil {
		c.RefinementCode = *refCode
	}
	if refName != nil {
		c.RefinementName = *refName
	}
	if lockedBy != nil {
		c.LockedBySaleID = *lockedBy
	}
	if notes != nil {
		c.Notes = *notes
	}
	return &c, nil
}

// Create persiste un costo de producción, siempre desbloqueado.
func (r *ProductionCostRepo) Create(cost *entity.ProductionCost) error {
	query := `
		INSERT INTO production_costs (id, product_id, description, cost_type, value, date, refinement_code, refinement_name, is_locked, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		cost.ID, cost.ProductID, cost.Description, cost.CostType, cost.Value, cost.Date,
		nullable(cost.RefinementCode), nullable(cost.RefinementName),
		nullable(cost.Notes), cost.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production cost: %w", err)
	}
	return nil
}

// GetByID obtiene un costo por ID.
func (r *ProductionCostRepo) GetByID(id string) (*entity.ProductionCost, error) {
	query := `SELECT ` + costColumns + ` FROM production_costs WHERE id = $1`
	c, err := scanCost(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production cost: %w", err)
	}
	return c, nil
}

// Update actualiza un costo no bloqueado. El WHERE excluye filas bloqueadas
// como última defensa del invariante de inmutabilidad; con cero filas
// afectadas se consulta la fila para separar inexistente de bloqueada.
func (r *ProductionCostRepo) Update(cost *entity.ProductionCost) error {
	query := `
		UPDATE production_costs SET description = $2, cost_type = $3, value = $4, date = $5,
			refinement_code = $6, refinement_name = $7, notes = $8
		WHERE id = $1 AND is_locked = FALSE`
	cmd, err := r.q.Exec(context.Background(), query,
		cost.ID, cost.Description, cost.CostType, cost.Value, cost.Date,
		nullable(cost.RefinementCode), nullable(cost.RefinementName), nullable(cost.Notes),
	)
	if err != nil {
		return fmt.Errorf("update production cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.zeroRowsCause(cost.ID)
	}
	return nil
}

// Delete elimina un costo no bloqueado. Mismo contrato que Update.
func (r *ProductionCostRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM production_costs WHERE id = $1 AND is_locked = FALSE`, id)
	if err != nil {
		return fmt.Errorf("delete production cost: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.zeroRowsCause(id)
	}
	return nil
}

// zeroRowsCause distingue por qué un UPDATE o DELETE condicionado por
// is_locked = FALSE no tocó filas: la fila no existe (ErrNotFound) o existe
// bloqueada (ErrLocked).
func (r *ProductionCostRepo) zeroRowsCause(id string) error {
	var locked bool
	err := r.q.QueryRow(context.Background(),
		`SELECT is_locked FROM production_costs WHERE id = $1`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("check production cost %s: %w", id, err)
	}
	return domain.ErrLocked
}

// List lista costos con filtros.
func (r *ProductionCostRepo) List(filter repository.CostFilter) ([]*entity.ProductionCost, error) {
	query := `SELECT ` + costColumns + ` FROM production_costs WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.CostType != "" {
		query += fmt.Sprintf(" AND cost_type = $%d", pos)
		args = append(args, filter.CostType)
		pos++
	}
	if filter.RefinementCode != "" {
		query += fmt.Sprintf(" AND refinement_code = $%d", pos)
		args = append(args, filter.RefinementCode)
		pos++
	}
	if filter.IsLocked != nil {
		query += fmt.Sprintf(" AND is_locked = $%d", pos)
		args = append(args, *filter.IsLocked)
		pos++
	}
	if filter.Search != "" {
		term := "%" + textutil.Normalize(filter.Search) + "%"
		query += fmt.Sprintf(" AND (unaccent(lower(description)) LIKE $%d OR unaccent(lower(coalesce(refinement_name, ''))) LIKE $%d)", pos, pos)
		args = append(args, term)
		pos++
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production costs: %w", err)
	}
	defer rows.Close()
	return collectCosts(rows)
}

// ListByRefinementCode devuelve el grupo completo del código, bloqueado o no.
func (r *ProductionCostRepo) ListByRefinementCode(code string) ([]*entity.ProductionCost, error) {
	query := `SELECT ` + costColumns + ` FROM production_costs
		WHERE refinement_code = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("list costs by refinement: %w", err)
	}
	defer rows.Close()
	return collectCosts(rows)
}

// ListWithRefinement devuelve los costos con código de refinamiento,
// opcionalmente filtrados por producto y excluyendo bloqueados.
func (r *ProductionCostRepo) ListWithRefinement(productID string, includeLocked bool) ([]*entity.ProductionCost, error) {
	query := `SELECT ` + costColumns + ` FROM production_costs WHERE refinement_code IS NOT NULL`
	var args []any
	pos := 1
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	if !includeLocked {
		query += " AND is_locked = FALSE"
	}
	query += " ORDER BY refinement_code, created_at"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list refinement costs: %w", err)
	}
	defer rows.Close()
	return collectCosts(rows)
}

// LockByRefinementCode bloquea los miembros aún desbloqueados del código en
// un solo UPDATE. El predicado is_locked = FALSE hace el bloqueo monotónico
// e idempotente: re-ejecutar no toca filas y nunca reasigna locked_by_sale_id.
func (r *ProductionCostRepo) LockByRefinementCode(code, saleID string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE production_costs
		SET is_locked = TRUE, locked_by_sale_id = $2, locked_at = $3
		WHERE refinement_code = $1 AND is_locked = FALSE`,
		code, saleID, at,
	)
	if err != nil {
		return 0, fmt.Errorf("lock refinement %s: %w", code, err)
	}
	return cmd.RowsAffected(), nil
}

func collectCosts(rows pgx.Rows) ([]*entity.ProductionCost, error) {
	var list []*entity.ProductionCost
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production cost: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
