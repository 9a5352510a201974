package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kirana-pos/internal/application/daily"
)

// DailyHandler jornada de caja (protegido).
type DailyHandler struct {
	uc *daily.DailyOpsUseCase
}

// NewDailyHandler construye el handler.
func NewDailyHandler(uc *daily.DailyOpsUseCase) *DailyHandler {
	return &DailyHandler{uc: uc}
}

// Today godoc
// @Summary      Jornada activa con las cuentas del día
// @Tags         daily-operations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TodayResponse
// @Router       /api/daily-operations/today [get]
func (h *DailyHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Abrir jornada
// @Tags         daily-operations
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.DailySessionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/daily-operations/start [post]
func (h *DailyHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.StartDay(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// End godoc
// @Summary      Cerrar jornada con los totales vendidos
// @Tags         daily-operations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DailySessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/daily-operations/end [put]
func (h *DailyHandler) End(c *fiber.Ctx) error {
	out, err := h.uc.EndDay(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Past godoc
// @Summary      Últimas 7 jornadas cerradas
// @Tags         daily-operations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DailySessionResponse
// @Router       /api/daily-operations/past [get]
func (h *DailyHandler) Past(c *fiber.Ctx) error {
	out, err := h.uc.PastDays(c.Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
