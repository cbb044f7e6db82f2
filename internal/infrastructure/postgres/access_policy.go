package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/bodega-api/internal/application/inventory"
)

var _ inventory.AccessPolicy = (*AccessPolicy)(nil)

// AccessPolicy resuelve autorización actor-bodega contra warehouse_users.
// El privilegio administrativo se resuelve antes, en el validador; aquí solo
// se consulta la membresía.
type AccessPolicy struct {
	pool *pgxpool.Pool
}

// NewAccessPolicy construye la política sobre el pool.
func NewAccessPolicy(pool *pgxpool.Pool) *AccessPolicy {
	return &AccessPolicy{pool: pool}
}

// IsAuthorized indica si el actor está en la lista de autorizados de la bodega.
func (p *AccessPolicy) IsAuthorized(ctx context.Context, actorID, warehouseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM warehouse_users
			WHERE warehouse_id = $1 AND user_id = $2
		)`
	var ok bool
	if err := p.pool.QueryRow(ctx, query, warehouseID, actorID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check warehouse authorization: %w", err)
	}
	return ok, nil
}
