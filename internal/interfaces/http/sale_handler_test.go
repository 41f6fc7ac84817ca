package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	apphttp "github.com/jhoicas/erp-api/internal/interfaces/http"
)

// stubSaleRepo cubre solo LastNumber; el resto de la interfaz no se usa en
// estos tests.
type stubSaleRepo struct {
	repository.SaleRepository
	last string
}

func (s *stubSaleRepo) LastNumber() (string, error) { return s.last, nil }

// El endpoint responde el siguiente número en el campo next_number del JSON.
func TestSaleHandler_NextNumber(t *testing.T) {
	uc := sales.NewUseCase(nil, &stubSaleRepo{last: "00007"}, nil, nil)
	handler := apphttp.NewSaleHandler(uc, nil)

	app := fiber.New()
	app.Get("/api/sales/next-number", handler.NextNumber)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/next-number", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "00008", body["next_number"])
}
