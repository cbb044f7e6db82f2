package entity

import "time"

// Tipos de transacción de stock.
const (
	KindWarehouseToWarehouse = "WW" // bodega -> bodega
	KindWarehouseToCustomer  = "WC" // bodega -> cliente
	KindCustomerToWarehouse  = "CW" // cliente -> bodega
)

// Modos de transporte de una transferencia.
const (
	TransferModeShip  = "SHIP"
	TransferModePlane = "PLANE"
	TransferModeTruck = "TRUCK"
)

// StockTransaction es el asiento inmutable del libro de stock. Una vez aceptada
// es la única autoridad sobre cómo cambió un StockBalance; los saldos son
// proyecciones derivadas que se actualizan en la misma transacción SQL.
// Según Kind, los campos opcionales obligatorios/prohibidos los decide el validador.
type StockTransaction struct {
	ID                     string
	Kind                   string // WW, WC, CW
	SourceWarehouseID      string // vacío si no aplica
	DestinationWarehouseID string // vacío si no aplica
	CustomerID             string // vacío si no aplica
	ProductID              string
	Quantity               int64  // siempre positiva
	TransferMode           string // SHIP, PLANE, TRUCK o vacío
	Notes                  string
	PerformedBy            string // UserID del actor
	CreatedAt              time.Time
}

// ValidKind indica si k es un tipo de transacción conocido.
func ValidKind(k string) bool {
	switch k {
	case KindWarehouseToWarehouse, KindWarehouseToCustomer, KindCustomerToWarehouse:
		return true
	}
	return false
}

// ValidTransferMode indica si m es un modo de transporte conocido (vacío es válido).
func ValidTransferMode(m string) bool {
	switch m {
	case "", TransferModeShip, TransferModePlane, TransferModeTruck:
		return true
	}
	return false
}
