package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto identificado por SKU (único), independiente de bodega.
// MinimumStock es el umbral de alerta: un saldo <= MinimumStock es stock crítico.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	MinimumStock int64           // umbral no negativo, por defecto 10
	Price        decimal.Decimal // precio de venta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
