package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de transacciones de stock:
// los deltas de saldo y el asiento se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		balanceRepo repository.StockBalanceRepository,
		txRepo repository.StockTransactionRepository,
	) error) error
}

// AccessPolicy resuelve si un actor puede referenciar una bodega.
// Los administradores se resuelven antes de consultar la política.
type AccessPolicy interface {
	IsAuthorized(ctx context.Context, actorID, warehouseID string) (bool, error)
}

// CriticalStockEvent se emite cuando un saldo tocado queda en o bajo el mínimo
// del producto. Es un efecto de notificación, nunca un rechazo.
type CriticalStockEvent struct {
	WarehouseID   string
	WarehouseName string
	ProductID     string
	SKU           string
	ProductName   string
	Quantity      int64
	MinimumStock  int64
	OccurredAt    time.Time
}

// AlertNotifier recibe eventos de stock crítico y los despacha (email, cola, log).
// Sus fallos se registran y nunca escalan a un fallo de la transacción.
type AlertNotifier interface {
	Notify(ctx context.Context, event CriticalStockEvent) error
}
