package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/textutil"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, code, name, document, contact_name, email, phone, zipcode, address, city, state, notes, active, created_at`

// SupplierRepo implementación sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	var document, contactName, email, phone, zipcode, address, city, state, notes *string
	err := row.Scan(
		&s.ID, &s.Code, &s.Name, &document, &contactName, &email, &phone,
		&zipcode, &address, &city, &state, &notes, &s.Active, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	for dst, src := range map[*string]*string{
		&s.Document: document, &s.ContactName: contactName, &s.Email: email,
		&s.Phone: phone, &s.Zipcode: zipcode, &s.Address: address,
		&s.City: city, &s.State: state, &s.Notes: notes,
	} {
		if src != nil {
			*dst = *src
		}
	}
	return &s, nil
}

// Create persiste un proveedor. El código es único.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, code, name, document, contact_name, email, phone, zipcode, address, city, state, notes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Code, supplier.Name, nullable(supplier.Document),
		nullable(supplier.ContactName), nullable(supplier.Email), nullable(supplier.Phone),
		nullable(supplier.Zipcode), nullable(supplier.Address), nullable(supplier.City),
		nullable(supplier.State), nullable(supplier.Notes), supplier.Active, supplier.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	s, err := scanSupplier(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update actualiza los datos del proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE suppliers SET code = $2, name = $3, document = $4, contact_name = $5,
			email = $6, phone = $7, zipcode = $8, address = $9, city = $10, state = $11,
			notes = $12, active = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Code, supplier.Name, nullable(supplier.Document),
		nullable(supplier.ContactName), nullable(supplier.Email), nullable(supplier.Phone),
		nullable(supplier.Zipcode), nullable(supplier.Address), nullable(supplier.City),
		nullable(supplier.State), nullable(supplier.Notes), supplier.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete elimina un proveedor.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// List lista proveedores con búsqueda insensible a acentos y filtro de estado.
func (r *SupplierRepo) List(filter repository.PartnerFilter) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE 1=1`
	var args []any
	pos := 1
	if filter.Search != "" {
		term := "%" + textutil.Normalize(filter.Search) + "%"
		query += fmt.Sprintf(" AND (unaccent(lower(name)) LIKE $%d OR unaccent(lower(code)) LIKE $%d OR coalesce(document, '') LIKE $%d)", pos, pos, pos)
		args = append(args, term)
		pos++
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	limit, offset := pageBounds(filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountActive cuenta los proveedores activos (total del dashboard).
func (r *SupplierRepo) CountActive() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM suppliers WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count suppliers: %w", err)
	}
	return count, nil
}
