package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// SaleHandler maneja las peticiones HTTP de ventas: creación,
// transición de estado, comprobantes y exportación fiscal.
type SaleHandler struct {
	uc      *sales.UseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Crear venta
// @Description  Crea la venta con sus ítems y registra la salida de stock
// @Description  de cada ítem en la misma transacción.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	sale, err := h.uc.CreateSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToSaleResponse(sale))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Produce      json
// @Param        status       query  string  false  "Filtrar por estado"
// @Param        customer_id  query  string  false  "Filtrar por cliente"
// @Param        search       query  string  false  "Número o notas"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	filter := repository.SaleFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Search:     c.Query("search"),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}
	list, err := h.uc.ListSales(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, dto.ToSaleResponse(sale))
	}
	return c.JSON(out)
}

// NextNumber godoc
// @Summary      Sugerir próximo número de venta
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.NextNumberResponse
// @Router       /api/sales/next-number [get]
func (h *SaleHandler) NextNumber(c *fiber.Ctx) error {
	number, err := h.uc.NextNumber(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NextNumberResponse{NextNumber: number})
}

// Transition godoc
// @Summary      Cambiar estado de la venta
// @Description  Al pasar a settled bloquea los refinamientos de costo de
// @Description  los ítems. Repetir la liquidación devuelve 200 sin efecto.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.TransitionSaleRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/status [patch]
func (h *SaleHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	sale, err := h.uc.Transition(c.Context(), c.Params("id"), in.Status)
	if errors.Is(err, domain.ErrAlreadyFinalized) && sale != nil {
		// Liquidación repetida: estado terminal, sin cambios.
		return c.JSON(dto.ToSaleResponse(sale))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToSaleResponse(sale))
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  Las ventas liquidadas no pueden eliminarse.
// @Tags         sales
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSale(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receipt godoc
// @Summary      Generar comprobante PDF
// @Tags         sales
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/receipt [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	doc, err := h.receipt.GenerateReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="comprobante.pdf"`)
	return c.Send(doc)
}

// ExportXML godoc
// @Summary      Exportar venta como XML
// @Tags         sales
// @Produce      application/xml
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/xml [get]
func (h *SaleHandler) ExportXML(c *fiber.Ctx) error {
	doc, err := h.receipt.ExportXML(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)
	return c.Send(doc)
}
