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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, code, name, document, email, phone, zipcode, address, neighborhood, city, state, notes, active, created_at`

// CustomerRepo implementación sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var document, email, phone, zipcode, address, neighborhood, city, state, notes *string
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &document, &email, &phone, &zipcode,
		&address, &neighborhood, &city, &state, &notes, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	for dst, src := range map[*string]*string{
		&c.Document: document, &c.Email: email, &c.Phone: phone, &c.Zipcode: zipcode,
		&c.Address: address, &c.Neighborhood: neighborhood, &c.City: city,
		&c.State: state, &c.Notes: notes,
	} {
		if src != nil {
			*dst = *src
		}
	}
	return &c, nil
}

// Create persiste un cliente. El código es único.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, code, name, document, email, phone, zipcode, address, neighborhood, city, state, notes, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Code, customer.Name, nullable(customer.Document),
		nullable(customer.Email), nullable(customer.Phone), nullable(customer.Zipcode),
		nullable(customer.Address), nullable(customer.Neighborhood), nullable(customer.City),
		nullable(customer.State), nullable(customer.Notes), customer.Active, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET code = $2, name = $3, document = $4, email = $5, phone = $6,
			zipcode = $7, address = $8, neighborhood = $9, city = $10, state = $11,
			notes = $12, active = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Code, customer.Name, nullable(customer.Document),
		nullable(customer.Email), nullable(customer.Phone), nullable(customer.Zipcode),
		nullable(customer.Address), nullable(customer.Neighborhood), nullable(customer.City),
		nullable(customer.State), nullable(customer.Notes), customer.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente. Falla con ErrConflict si tiene ventas.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// List lista clientes con búsqueda insensible a acentos y filtro de estado.
func (r *CustomerRepo) List(filter repository.PartnerFilter) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
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
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountActive cuenta los clientes activos (total del dashboard).
func (r *CustomerRepo) CountActive() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM customers WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}
