package entity

import "time"

// Tipos de cliente.
const (
	CustomerTypeBusiness   = "BUSINESS"
	CustomerTypeIndividual = "INDIVIDUAL"
)

// Customer representa un cliente: origen o destino externo de una transferencia.
// No participa en la matemática de stock, solo como extremo de la transacción.
type Customer struct {
	ID            string
	Name          string
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	Type          string // BUSINESS, INDIVIDUAL
	Active        bool
	CreatedAt     time.Time
}
