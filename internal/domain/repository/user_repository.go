package repository

import "github.com/tu-usuario/bodega-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
	// ListAdminEmails devuelve los emails de los administradores activos
	// (destinatarios de alertas de stock crítico y del reporte diario).
	ListAdminEmails() ([]string, error)
}
