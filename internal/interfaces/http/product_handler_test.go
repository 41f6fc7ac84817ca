package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/catalog"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	apphttp "github.com/jhoicas/erp-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake ProductRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.CurrentStock = stock
	}
	return nil
}

func (r *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CurrentStock.LessThan(p.MinStock) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

// buildTestApp monta una app Fiber con las rutas de productos sobre el
// repositorio fake.
func buildTestApp(repo repository.ProductRepository) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewProductHandler(catalog.NewProductUseCase(repo))
	products := app.Group("/api/products")
	products.Post("/", handler.Create)
	products.Get("/", handler.List)
	products.Get("/low-stock", handler.LowStock)
	products.Get("/:id", handler.GetByID)
	products.Put("/:id", handler.Update)
	products.Delete("/:id", handler.Delete)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Crear un producto válido debe responder 201 con el producto creado,
// stock inicial en cero y unidad por defecto.
func TestProductHandler_Create_Retorna201(t *testing.T) {
	app := buildTestApp(newFakeProductRepo())

	resp := postJSON(t, app, "/api/products/", fiber.Map{
		"code":       "MAT-001",
		"name":       "Materia prima base",
		"sale_price": "25.50",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MAT-001", body["code"])
	assert.NotEmpty(t, body["id"], "debe asignarse un ID")
	assert.Equal(t, "0", body["current_stock"], "el stock inicial debe ser cero")
	assert.Equal(t, true, body["active"])
}

// Repetir el código debe responder 409 DUPLICATE.
func TestProductHandler_Create_CodigoDuplicado_Retorna409(t *testing.T) {
	app := buildTestApp(newFakeProductRepo())

	first := postJSON(t, app, "/api/products/", fiber.Map{"code": "MAT-001", "name": "Uno"})
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	resp := postJSON(t, app, "/api/products/", fiber.Map{"code": "MAT-001", "name": "Dos"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "DUPLICATE")
}

// Body sin campos requeridos debe responder 400 VALIDATION y el handler debe
// cortar ahí: no se persiste nada ni se sobreescribe la respuesta de error.
func TestProductHandler_Create_SinNombre_Retorna400(t *testing.T) {
	repo := newFakeProductRepo()
	app := buildTestApp(repo)

	resp := postJSON(t, app, "/api/products/", fiber.Map{"code": "MAT-001"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "VALIDATION")
	assert.Empty(t, repo.products, "un body inválido no debe crear el producto")
}

// Un body que no es JSON debe responder 400 INVALID_BODY sin ejecutar el
// caso de uso.
func TestProductHandler_Create_BodyMalformado_Retorna400(t *testing.T) {
	repo := newFakeProductRepo()
	app := buildTestApp(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/products/", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_BODY")
	assert.Empty(t, repo.products)
}

// Consultar un ID inexistente debe responder 404 NOT_FOUND.
func TestProductHandler_GetByID_Inexistente_Retorna404(t *testing.T) {
	app := buildTestApp(newFakeProductRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/products/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

// El listado con stock bajo solo incluye productos bajo su mínimo.
func TestProductHandler_LowStock_FiltraBajoMinimo(t *testing.T) {
	repo := newFakeProductRepo()
	repo.products["p1"] = &entity.Product{
		ID: "p1", Code: "A", Name: "Bajo",
		CurrentStock: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(5),
	}
	repo.products["p2"] = &entity.Product{
		ID: "p2", Code: "B", Name: "Sano",
		CurrentStock: decimal.NewFromInt(50), MinStock: decimal.NewFromInt(5),
	}
	app := buildTestApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/products/low-stock", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0]["code"])
}
