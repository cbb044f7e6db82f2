package entity

import "time"

// StockBalance representa el saldo actual de un producto en una bodega
// (par warehouse+product único). Invariante: Quantity >= 0 en todo momento.
// Se crea de forma perezosa en el primer crédito y nunca se elimina.
type StockBalance struct {
	WarehouseID string
	ProductID   string
	Quantity    int64
	UpdatedAt   time.Time
}
