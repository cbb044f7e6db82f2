package dto

import "time"

// CreateTransactionRequest body para POST /api/transactions.
type CreateTransactionRequest struct {
	Kind                   string `json:"kind"` // WW, WC, CW
	SourceWarehouseID      string `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string `json:"destination_warehouse_id,omitempty"`
	CustomerID             string `json:"customer_id,omitempty"`
	ProductID              string `json:"product_id"`
	Quantity               int64  `json:"quantity"`
	TransferMode           string `json:"transfer_mode,omitempty"` // SHIP, PLANE, TRUCK
	Notes                  string `json:"notes,omitempty"`
}

// StockTransactionResponse salida de un asiento del libro de transacciones.
type StockTransactionResponse struct {
	ID                     string    `json:"id"`
	Kind                   string    `json:"kind"`
	SourceWarehouseID      string    `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string    `json:"destination_warehouse_id,omitempty"`
	CustomerID             string    `json:"customer_id,omitempty"`
	ProductID              string    `json:"product_id"`
	Quantity               int64     `json:"quantity"`
	TransferMode           string    `json:"transfer_mode,omitempty"`
	Notes                  string    `json:"notes,omitempty"`
	PerformedBy            string    `json:"performed_by"`
	CreatedAt              time.Time `json:"created_at"`
}

// StockTransactionListResponse lista paginada de asientos.
type StockTransactionListResponse struct {
	Items []StockTransactionResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// StockBalanceResponse saldo de un producto en una bodega con datos de contexto.
type StockBalanceResponse struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku"`
	ProductName   string `json:"product_name"`
	Quantity      int64  `json:"quantity"`
	MinimumStock  int64  `json:"minimum_stock"`
	Critical      bool   `json:"critical"`
}

// StockBalanceListResponse lista paginada de saldos.
type StockBalanceListResponse struct {
	Items []StockBalanceResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// StockSummaryResponse agregados globales de stock (cacheados).
type StockSummaryResponse struct {
	TotalProducts   int   `json:"total_products"`
	TotalWarehouses int   `json:"total_warehouses"`
	TotalBalances   int   `json:"total_balances"`
	TotalUnits      int64 `json:"total_units"`
	CriticalCount   int   `json:"critical_count"`
}
