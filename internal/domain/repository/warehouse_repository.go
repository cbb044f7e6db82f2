package repository

import "github.com/tu-usuario/bodega-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// La relación muchos-a-muchos con usuarios autorizados vive en warehouse_users.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error

	AddAuthorizedUser(warehouseID, userID string) error
	RemoveAuthorizedUser(warehouseID, userID string) error
	// ListAuthorizedEmails devuelve los emails de los usuarios autorizados
	// de la bodega (para notificaciones de stock crítico).
	ListAuthorizedEmails(warehouseID string) ([]string, error)
}
