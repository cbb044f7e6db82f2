package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
// La relación muchos-a-muchos con usuarios autorizados vive en warehouse_users.
type WarehouseRepo struct {
	pool *pgxpool.Pool
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(pool *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{pool: pool}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Location,
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID con sus usuarios autorizados; nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.Name, &w.Location, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	userIDs, err := r.listAuthorizedUserIDs(id)
	if err != nil {
		return nil, err
	}
	w.AuthorizedUserIDs = userIDs
	return &w, nil
}

// Update actualiza una bodega existente (la lista de autorizados se maneja aparte).
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, location = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Location, warehouse.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas con paginación.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, location, created_at, updated_at
		FROM warehouses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID.
func (r *WarehouseRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// AddAuthorizedUser autoriza un usuario en la bodega (idempotente: ON CONFLICT DO NOTHING).
func (r *WarehouseRepo) AddAuthorizedUser(warehouseID, userID string) error {
	query := `
		INSERT INTO warehouse_users (warehouse_id, user_id)
		VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(context.Background(), query, warehouseID, userID)
	if err != nil {
		return fmt.Errorf("add authorized user: %w", err)
	}
	return nil
}

// RemoveAuthorizedUser revoca la autorización de un usuario sobre la bodega.
func (r *WarehouseRepo) RemoveAuthorizedUser(warehouseID, userID string) error {
	query := `DELETE FROM warehouse_users WHERE warehouse_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(context.Background(), query, warehouseID, userID)
	if err != nil {
		return fmt.Errorf("remove authorized user: %w", err)
	}
	return nil
}

// ListAuthorizedEmails devuelve los emails de los usuarios autorizados activos de la bodega.
func (r *WarehouseRepo) ListAuthorizedEmails(warehouseID string) ([]string, error) {
	query := `
		SELECT u.email
		FROM warehouse_users wu
		JOIN users u ON u.id = wu.user_id
		WHERE wu.warehouse_id = $1 AND u.status = 'active' AND u.email <> ''`
	return r.scanStrings(query, warehouseID)
}

func (r *WarehouseRepo) listAuthorizedUserIDs(warehouseID string) ([]string, error) {
	query := `SELECT user_id FROM warehouse_users WHERE warehouse_id = $1`
	return r.scanStrings(query, warehouseID)
}

func (r *WarehouseRepo) scanStrings(query string, args ...any) ([]string, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query warehouse users: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan warehouse user: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
