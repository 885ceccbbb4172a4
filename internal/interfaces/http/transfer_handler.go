package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/application/waybill"
	"github.com/jhoicas/Traslados-api/internal/domain"
)

// TransferHandler maneja las peticiones HTTP del workflow de traslados (protegido).
type TransferHandler struct {
	uc        *transfer.WorkflowUseCase
	waybillUC *waybill.WaybillUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.WorkflowUseCase, waybillUC *waybill.WaybillUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, waybillUC: waybillUC}
}

// transferError mapea errores de dominio del workflow a respuestas HTTP.
func transferError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateIdempotencyKey):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_IDEMPOTENCY_KEY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Create godoc
// @Summary      Crear traslado (borrador)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from_warehouse_id, to_warehouse_id, material_id, planned_qty, deadline_at"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateTransfer(c.Context(), GetUserID(c), in)
	if err != nil {
		return transferError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 50)"
// @Param        offset  query  int  false  "desplazamiento (default 0)"
// @Success      200  {object}  dto.TransferListResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListTransfers(limit, offset)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener traslado por ID
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetTransfer(c.Params("id"))
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar responsables (conductor y bodegueros)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.AssignTransferRequest  true  "driver_id, storekeeper_from_id, storekeeper_to_id (parciales)"
// @Success      200   {object}  dto.TransferResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/assign [post]
func (h *TransferHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AssignTransfer(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// Dispatch godoc
// @Summary      Despachar traslado (debita la bodega de origen)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.DispatchTransferRequest  true  "shipped_qty, seal_number, idempotency_key"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/dispatch [post]
func (h *TransferHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.DispatchTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DispatchTransfer(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir traslado (acredita la bodega de destino)
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado"
// @Param        body  body  dto.ReceiveTransferRequest  true  "received_qty, damaged_qty, idempotency_key"
// @Success      200   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/receive [post]
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReceiveTransfer(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// ListEvents godoc
// @Summary      Historial de eventos de un traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del traslado"
// @Param        limit   query  int     false  "máximo de filas (default 100)"
// @Param        offset  query  int     false  "desplazamiento (default 0)"
// @Success      200  {object}  dto.TransferEventListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/events [get]
func (h *TransferHandler) ListEvents(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	out, err := h.uc.ListEvents(c.Params("id"), limit, offset)
	if err != nil {
		return transferError(c, err)
	}
	return c.JSON(out)
}

// DownloadWaybill godoc
// @Summary      Descargar acta de traslado (PDF)
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del traslado"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/waybill [get]
func (h *TransferHandler) DownloadWaybill(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.waybillUC.DownloadWaybill(c.Context(), c.Params("id"))
	if err != nil {
		return transferError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
