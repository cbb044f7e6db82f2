package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// Rechazos del motor de transacciones de stock.
	ErrInvalidQuantity   = errors.New("cantidad inválida")
	ErrMissingParty      = errors.New("falta una parte requerida para el tipo de transacción")
	ErrUnexpectedParty   = errors.New("parte no permitida para el tipo de transacción")
	ErrNoStockRecord     = errors.New("sin registro de stock para el producto en la bodega origen")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAccessDenied      = errors.New("actor no autorizado para la bodega")
	ErrCommitFailed      = errors.New("no se pudo confirmar la transacción")
)

// InsufficientStockError lleva el diagnóstico disponible-vs-solicitado.
// errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	WarehouseID string
	ProductID   string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en bodega %s: disponible %d, solicitado %d",
		e.WarehouseID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NoStockRecordError indica que no existe fila de saldo para (bodega, producto).
type NoStockRecordError struct {
	WarehouseID string
	ProductID   string
}

func (e *NoStockRecordError) Error() string {
	return fmt.Sprintf("sin registro de stock para producto %s en bodega %s", e.ProductID, e.WarehouseID)
}

func (e *NoStockRecordError) Unwrap() error { return ErrNoStockRecord }

// AccessDeniedError nombra la bodega que el actor no puede referenciar.
type AccessDeniedError struct {
	ActorID     string
	WarehouseID string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("actor %s no autorizado para la bodega %s", e.ActorID, e.WarehouseID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }
