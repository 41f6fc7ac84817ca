package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// stubQuerier responde los UPDATE y DELETE con cero filas afectadas y
// resuelve el SELECT de verificación según exists y locked.
type stubQuerier struct {
	exists bool
	locked bool
}

func (s *stubQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("UPDATE 0"), nil
}

func (s *stubQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (s *stubQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return stubRow{exists: s.exists, locked: s.locked}
}

type stubRow struct {
	exists bool
	locked bool
}

func (r stubRow) Scan(dest ...any) error {
	if !r.exists {
		return pgx.ErrNoRows
	}
	*(dest[0].(*bool)) = r.locked
	return nil
}

// Cero filas afectadas tiene dos causas distintas que el contrato separa:
// la fila no existe o la fila existe bloqueada.
func TestCostUpdate_CeroFilasDistingueCausa(t *testing.T) {
	cost := &entity.ProductionCost{ID: "c1"}

	repo := NewProductionCostRepository(&stubQuerier{exists: false})
	assert.ErrorIs(t, repo.Update(cost), domain.ErrNotFound)

	repo = NewProductionCostRepository(&stubQuerier{exists: true, locked: true})
	assert.ErrorIs(t, repo.Update(cost), domain.ErrLocked)
}

func TestCostDelete_CeroFilasDistingueCausa(t *testing.T) {
	repo := NewProductionCostRepository(&stubQuerier{exists: false})
	assert.ErrorIs(t, repo.Delete("c1"), domain.ErrNotFound)

	repo = NewProductionCostRepository(&stubQuerier{exists: true, locked: true})
	assert.ErrorIs(t, repo.Delete("c1"), domain.ErrLocked)
}
