package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acopio/acopio-api/internal/application/analytics"
	"github.com/acopio/acopio-api/internal/application/dto"
)

// AnalyticsHandler maneja las consultas de agregación del libro.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// ProfitLoss godoc
// @Summary      Pérdidas y ganancias por día
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string    false  "YYYY-MM-DD (default: hace 365 días)"
// @Param        end_date    query  string    false  "YYYY-MM-DD (default: hoy)"
// @Param        good_id     query  []string  false  "IDs de bienes"
// @Param        kind        query  string    false  "ACQUIRE | DISPOSE"
// @Success      200  {object}  dto.ProfitLossResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/profit-loss [get]
func (h *AnalyticsHandler) ProfitLoss(c *fiber.Ctx) error {
	var in dto.AnalyticsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.ProfitLoss(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Performance godoc
// @Summary      Desempeño por bien (margen descendente)
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string    false  "YYYY-MM-DD"
// @Param        end_date    query  string    false  "YYYY-MM-DD"
// @Param        good_id     query  []string  false  "IDs de bienes"
// @Success      200  {object}  dto.PerformanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/performance [get]
func (h *AnalyticsHandler) Performance(c *fiber.Ctx) error {
	var in dto.AnalyticsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.Performance(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Trend godoc
// @Summary      Serie de tendencia por bucket temporal
// @Tags         analytics
// @Produce      json
// @Param        granularity  query  string    false  "day | week | month"  default(day)
// @Param        start_date   query  string    false  "YYYY-MM-DD"
// @Param        end_date     query  string    false  "YYYY-MM-DD"
// @Param        good_id      query  []string  false  "IDs de bienes"
// @Param        kind         query  string    false  "ACQUIRE | DISPOSE"
// @Success      200  {object}  dto.TrendResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/trend [get]
func (h *AnalyticsHandler) Trend(c *fiber.Ctx) error {
	var in dto.TrendRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.Trend(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen consolidado de la ventana
// @Tags         analytics
// @Produce      json
// @Param        start_date  query  string    false  "YYYY-MM-DD"
// @Param        end_date    query  string    false  "YYYY-MM-DD"
// @Param        good_id     query  []string  false  "IDs de bienes"
// @Param        kind        query  string    false  "ACQUIRE | DISPOSE"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	var in dto.AnalyticsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.Summary(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
