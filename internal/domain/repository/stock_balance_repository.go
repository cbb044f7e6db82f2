package repository

import "github.com/tu-usuario/bodega-api/internal/domain/entity"

// BalanceItem resultado crudo de saldo con datos de producto y bodega (para listados y reporte).
type BalanceItem struct {
	WarehouseID   string
	WarehouseName string
	ProductID     string
	SKU           string
	ProductName   string
	Quantity      int64
	MinimumStock  int64
}

// StockSummary agregados globales de stock para el dashboard.
type StockSummary struct {
	TotalProducts   int
	TotalWarehouses int
	TotalBalances   int
	TotalUnits      int64
	CriticalCount   int // saldos con quantity <= minimum_stock
}

// StockBalanceRepository define el puerto para consultar/actualizar saldos por bodega+producto.
// Get y GetForUpdate devuelven nil cuando no existe fila: el validador distingue
// "sin registro" de "stock insuficiente".
type StockBalanceRepository interface {
	Get(warehouseID, productID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); serializa transacciones
	// concurrentes sobre el mismo par (bodega, producto).
	GetForUpdate(warehouseID, productID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error

	List(warehouseID, productID string, limit, offset int) ([]BalanceItem, error)
	// ListCritical devuelve los saldos con quantity <= minimum_stock del producto.
	ListCritical() ([]BalanceItem, error)
	// ListAll devuelve todos los saldos con producto y bodega (reporte diario).
	ListAll() ([]BalanceItem, error)
	Summary() (*StockSummary, error)
}
