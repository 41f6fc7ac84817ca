package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación sobre PostgreSQL. La tabla guarda a lo sumo una
// fila (la empresa emisora).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Get devuelve la empresa o nil si aún no se configuró.
func (r *CompanyRepo) Get() (*entity.Company, error) {
	var c entity.Company
	var tradeName, document, email, phone, address, city, state, zipcode *string
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, trade_name, document, email, phone, address, city, state, zipcode, updated_at
		FROM company LIMIT 1`,
	).Scan(&c.ID, &c.Name, &tradeName, &document, &email, &phone, &address, &city, &state, &zipcode, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	for dst, src := range map[*string]*string{
		&c.TradeName: tradeName, &c.Document: document, &c.Email: email, &c.Phone: phone,
		&c.Address: address, &c.City: city, &c.State: state, &c.Zipcode: zipcode,
	} {
		if src != nil {
			*dst = *src
		}
	}
	return &c, nil
}

// Upsert crea o reemplaza la fila única de la empresa.
func (r *CompanyRepo) Upsert(company *entity.Company) error {
	query := `
		INSERT INTO company (id, name, trade_name, document, email, phone, address, city, state, zipcode, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, trade_name = EXCLUDED.trade_name,
			document = EXCLUDED.document, email = EXCLUDED.email,
			phone = EXCLUDED.phone, address = EXCLUDED.address,
			city = EXCLUDED.city, state = EXCLUDED.state,
			zipcode = EXCLUDED.zipcode, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, nullable(company.TradeName), nullable(company.Document),
		nullable(company.Email), nullable(company.Phone), nullable(company.Address),
		nullable(company.City), nullable(company.State), nullable(company.Zipcode),
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert company: %w", err)
	}
	return nil
}
