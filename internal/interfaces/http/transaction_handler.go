package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// TransactionHandler maneja el registro y consulta de transacciones de stock (protegido).
type TransactionHandler struct {
	processor *inventory.TransactionProcessor
	query     *inventory.TransactionQueryUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(processor *inventory.TransactionProcessor, query *inventory.TransactionQueryUseCase) *TransactionHandler {
	return &TransactionHandler{processor: processor, query: query}
}

// Create godoc
// @Summary      Registrar transacción de stock
// @Description  Valida y aplica una transacción WW (bodega a bodega), WC (bodega
//
//	a cliente) o CW (cliente a bodega). La validación y la
//	actualización de saldos ocurren en una sola transacción de DB;
//	cada POST genera un asiento nuevo (no es idempotente).
//
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "kind, product_id, quantity, partes según kind, transfer_mode (WW)"
// @Success      201   {object}  dto.StockTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse  "estructura o cantidad inválida"
// @Failure      403   {object}  dto.ErrorResponse  "bodega no autorizada para el usuario"
// @Failure      404   {object}  dto.ErrorResponse  "entidad inexistente o sin registro de stock"
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	role := GetRole(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	record, err := h.processor.Process(c.Context(), inventory.TransactionInput{
		Kind:                   in.Kind,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		CustomerID:             in.CustomerID,
		ProductID:              in.ProductID,
		Quantity:               in.Quantity,
		TransferMode:           in.TransferMode,
		Notes:                  in.Notes,
		ActorID:                userID,
		ActorRole:              role,
	})
	if err != nil {
		return transactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToTransactionResponse(record))
}

// transactionError traduce los errores del dominio a códigos HTTP.
func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "quantity debe ser un entero positivo"})
	case errors.Is(err, domain.ErrMissingParty):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_PARTY", Message: "falta una parte requerida para este tipo de transacción"})
	case errors.Is(err, domain.ErrUnexpectedParty):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNEXPECTED_PARTY", Message: "la transacción incluye una parte que no corresponde a su tipo"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind o transfer_mode inválido"})
	case errors.Is(err, domain.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCESS_DENIED", Message: "bodega no autorizada para el usuario"})
	case errors.Is(err, domain.ErrNoStockRecord):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_STOCK_RECORD", Message: "el producto no tiene registro de stock en la bodega origen"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto, bodega o cliente no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// GetByID godoc
// @Summary      Obtener transacción por ID
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.StockTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.query.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar transacciones
// @Description  Historial de asientos ordenado del más reciente al más antiguo.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega (origen o destino)"
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        kind          query  string  false  "Filtrar por tipo (WW, WC, CW)"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.StockTransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	filter := repository.TransactionFilter{
		WarehouseID: c.Query("warehouse_id"),
		ProductID:   c.Query("product_id"),
		Kind:        c.Query("kind"),
	}
	out, err := h.query.List(filter, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
