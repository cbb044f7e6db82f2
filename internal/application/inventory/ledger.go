package inventory

import (
	"time"

	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// StockLedger aplica débitos y créditos sobre los saldos por (bodega, producto).
// Opera sobre un repositorio atado a una transacción SQL: cada operación bloquea
// la fila (SELECT FOR UPDATE), así dos transacciones sobre el mismo par se
// serializan y pares disjuntos avanzan en paralelo.
//
// El ledger es el punto final de aplicación del invariante quantity >= 0; el
// validador hace el mismo chequeo antes como rechazo temprano, pero la última
// palabra la tiene el débito bajo bloqueo de fila.
type StockLedger struct {
	balances repository.StockBalanceRepository
}

// NewStockLedger construye el ledger sobre el repositorio de saldos (pool o tx).
func NewStockLedger(balances repository.StockBalanceRepository) *StockLedger {
	return &StockLedger{balances: balances}
}

// Balance devuelve el saldo actual; 0 implícito si no existe fila.
func (l *StockLedger) Balance(warehouseID, productID string) (int64, error) {
	b, err := l.balances.Get(warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, nil
	}
	return b.Quantity, nil
}

// Credit suma amount al saldo, creando la fila en 0 en el primer uso.
// Devuelve el saldo resultante para evaluar el umbral sin una segunda lectura.
func (l *StockLedger) Credit(warehouseID, productID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	b, err := l.balances.GetForUpdate(warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		b = &entity.StockBalance{WarehouseID: warehouseID, ProductID: productID}
	}
	b.Quantity += amount
	b.UpdatedAt = time.Now()
	if err := l.balances.Upsert(b); err != nil {
		return 0, err
	}
	return b.Quantity, nil
}

// Debit resta amount del saldo. Falla sin mutar si no hay fila o el saldo es
// menor a amount; el resultado queda garantizado >= 0.
func (l *StockLedger) Debit(warehouseID, productID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	b, err := l.balances.GetForUpdate(warehouseID, productID)
	if err != nil {
		return 0, err
	}
	if b == nil {
		return 0, &domain.NoStockRecordError{WarehouseID: warehouseID, ProductID: productID}
	}
	if b.Quantity < amount {
		return 0, &domain.InsufficientStockError{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Available:   b.Quantity,
			Requested:   amount,
		}
	}
	b.Quantity -= amount
	b.UpdatedAt = time.Now()
	if err := l.balances.Upsert(b); err != nil {
		return 0, err
	}
	return b.Quantity, nil
}
