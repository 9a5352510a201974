package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/billing"
	"github.com/jhoicas/kirana-pos/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillHandler historial de cuentas, comprobante PDF y exportación (protegido).
type BillHandler struct {
	query   *billing.BillQueryUseCase
	receipt *billing.ReceiptUseCase
}

// NewBillHandler construye el handler.
func NewBillHandler(query *billing.BillQueryUseCase, receipt *billing.ReceiptUseCase) *BillHandler {
	return &BillHandler{query: query, receipt: receipt}
}

// List godoc
// @Summary      Historial de cuentas
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo 100"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.BillListResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "parámetros de paginación inválidos")
	}
	out, err := h.query.List(c.Context(), GetUserID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una cuenta
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la cuenta"
// @Success      200  {object}  dto.BillReceipt
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) Get(c *fiber.Ctx) error {
	out, err := h.query.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/receipt [get]
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	content, filename, err := h.receipt.DownloadReceipt(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(content)
}

// Export godoc
// @Summary      Exportar historial a Excel
// @Tags         bills
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/bills/export [get]
func (h *BillHandler) Export(c *fiber.Ctx) error {
	content, filename, err := h.query.Export(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(content)
}
