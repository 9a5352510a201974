package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/alerts"
)

// AlertHandler avisos de stock y rentabilidad (protegido).
type AlertHandler struct {
	uc *alerts.AlertsUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *alerts.AlertsUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Avisos vigentes (stock bajo, margen bajo, pérdida)
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/notifications [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
