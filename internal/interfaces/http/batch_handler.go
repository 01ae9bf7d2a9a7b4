package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acopio/acopio-api/internal/application/batch"
	"github.com/acopio/acopio-api/internal/application/dto"
)

// BatchHandler maneja el procesamiento de lotes (remisiones de varias líneas).
type BatchHandler struct {
	uc *batch.ProcessorUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batch.ProcessorUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Process godoc
// @Summary      Procesar lote de asientos
// @Description  Valida todas las líneas y las confirma en una sola transacción, con una única cifra de liquidación. Cualquier línea inválida rechaza el lote completo.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessBatchRequest  true  "Líneas del lote"
// @Success      201   {object}  dto.BatchResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ledger/batches [post]
func (h *BatchHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ProcessBatch(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
