package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acopio/acopio-api/internal/application/dto"
	"github.com/acopio/acopio-api/internal/application/ledger"
)

// LedgerHandler maneja las peticiones HTTP para asientos del libro.
type LedgerHandler struct {
	uc *ledger.ReconcilerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.ReconcilerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar asiento (compra o venta)
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Datos del asiento"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/entries [post]
func (h *LedgerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.CreateFromRequest(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ledger.ToEntryResponse(entry))
}

// GetByID godoc
// @Summary      Obtener asiento por ID
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.EntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/entries/{id} [get]
func (h *LedgerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	entry, err := h.uc.GetEntry(c.UserContext(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(ledger.ToEntryResponse(entry))
}

// List godoc
// @Summary      Listar asientos con filtros
// @Tags         ledger
// @Produce      json
// @Param        good_id     query  []string  false  "IDs de bienes"
// @Param        kind        query  string    false  "ACQUIRE | DISPOSE"
// @Param        batch_id    query  string    false  "ID del lote"
// @Param        start_date  query  string    false  "YYYY-MM-DD"
// @Param        end_date    query  string    false  "YYYY-MM-DD"
// @Param        limit       query  int       false  "Límite"   default(20)
// @Param        offset      query  int       false  "Offset"   default(0)
// @Success      200  {object}  dto.EntryListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ledger/entries [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	var in dto.ListEntriesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.ListFromRequest(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Enmendar asiento
// @Description  Enmienda parcial; la existencia del bien se reconcilia (revertir + reaplicar) en la misma transacción.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del asiento"
// @Param        body  body  dto.UpdateEntryRequest  true  "Campos a enmendar"
// @Success      200   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/entries/{id} [put]
func (h *LedgerHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entry, err := h.uc.AmendFromRequest(c.UserContext(), id, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(ledger.ToEntryResponse(entry))
}

// Delete godoc
// @Summary      Eliminar asiento
// @Description  Elimina el asiento revirtiendo su efecto sobre la existencia del bien.
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/entries/{id} [delete]
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.RemoveEntry(c.UserContext(), id); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
