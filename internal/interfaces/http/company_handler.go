package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/finance"
)

// CompanyHandler maneja las peticiones HTTP de los datos de la empresa
// emisora (registro único).
type CompanyHandler struct {
	uc *finance.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *finance.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener datos de la empresa
// @Tags         company
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	company, err := h.uc.GetCompany(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompanyResponse(company))
}

// Save godoc
// @Summary      Guardar datos de la empresa
// @Description  Crea o reemplaza el registro único de la empresa.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CompanyRequest  true  "Datos de la empresa"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company [put]
func (h *CompanyHandler) Save(c *fiber.Ctx) error {
	var in dto.CompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	company, err := h.uc.SaveCompany(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompanyResponse(company))
}
