package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// AuthorizedUserIDs es la relación muchos-a-muchos con los usuarios autorizados
// a operar sobre la bodega (tabla warehouse_users); el orden es irrelevante.
type Warehouse struct {
	ID                string
	Name              string
	Location          string
	AuthorizedUserIDs []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
