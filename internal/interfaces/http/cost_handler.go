package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/costing"
	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CostHandler maneja las peticiones HTTP del registro de costos de
// producción y sus refinamientos.
type CostHandler struct {
	uc *costing.RegistryUseCase
}

// NewCostHandler construye el handler.
func NewCostHandler(uc *costing.RegistryUseCase) *CostHandler {
	return &CostHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar costo de producción
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCostRequest  true  "Datos del costo"
// @Success      201   {object}  dto.CostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-costs [post]
func (h *CostHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCostRequest
	if !parseBody(c, &in) {
		return nil
	}
	cost, err := h.uc.CreateCost(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCostResponse(cost))
}

// GetByID godoc
// @Summary      Obtener costo por ID
// @Tags         costs
// @Produce      json
// @Param        id   path  string  true  "ID del costo"
// @Success      200  {object}  dto.CostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-costs/{id} [get]
func (h *CostHandler) GetByID(c *fiber.Ctx) error {
	cost, err := h.uc.GetCost(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCostResponse(cost))
}

// List godoc
// @Summary      Listar costos de producción
// @Tags         costs
// @Produce      json
// @Param        product_id       query  string  false  "Filtrar por producto"
// @Param        cost_type        query  string  false  "Filtrar por tipo"
// @Param        refinement_code  query  string  false  "Filtrar por refinamiento"
// @Param        is_locked        query  bool    false  "Filtrar por bloqueo"
// @Param        search           query  string  false  "Descripción o nombre de refinamiento"
// @Param        limit            query  int     false  "Límite"  default(20)
// @Param        offset           query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.CostResponse
// @Router       /api/production-costs [get]
func (h *CostHandler) List(c *fiber.Ctx) error {
	filter := repository.CostFilter{
		ProductID:      c.Query("product_id"),
		CostType:       c.Query("cost_type"),
		RefinementCode: c.Query("refinement_code"),
		Search:         c.Query("search"),
		Limit:          c.QueryInt("limit", 20),
		Offset:         c.QueryInt("offset", 0),
	}
	if c.Query("is_locked") != "" {
		locked := c.QueryBool("is_locked")
		filter.IsLocked = &locked
	}
	costs, err := h.uc.ListCosts(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CostResponse, 0, len(costs))
	for _, cost := range costs {
		out = append(out, dto.ToCostResponse(cost))
	}
	return c.JSON(out)
}

// ListRefinements godoc
// @Summary      Listar refinamientos
// @Description  Agrupa los costos con código de refinamiento, con total
// @Description  agregado y estado de bloqueo.
// @Tags         costs
// @Produce      json
// @Param        product_id      query  string  false  "Filtrar por producto"
// @Param        include_locked  query  bool    false  "Incluir grupos bloqueados"  default(false)
// @Success      200  {array}  dto.RefinementResponse
// @Router       /api/production-costs/refinements [get]
func (h *CostHandler) ListRefinements(c *fiber.Ctx) error {
	refs, err := h.uc.ListRefinements(c.Context(), c.Query("product_id"), c.QueryBool("include_locked", false))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.RefinementResponse, 0, len(refs))
	for _, ref := range refs {
		out = append(out, dto.ToRefinementResponse(ref))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar costo
// @Description  Falla con 409 LOCKED si el costo está bloqueado por una venta liquidada.
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del costo"
// @Param        body  body  dto.UpdateCostRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.CostResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production-costs/{id} [put]
func (h *CostHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCostRequest
	if !parseBody(c, &in) {
		return nil
	}
	cost, err := h.uc.UpdateCost(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCostResponse(cost))
}

// Delete godoc
// @Summary      Eliminar costo
// @Description  Falla con 409 LOCKED si el costo está bloqueado por una venta liquidada.
// @Tags         costs
// @Produce      json
// @Param        id  path  string  true  "ID del costo"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production-costs/{id} [delete]
func (h *CostHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteCost(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
