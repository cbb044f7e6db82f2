package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo implementación del libro de transacciones sobre PostgreSQL
// (usable con pool o tx). Los asientos son inmutables: no hay UPDATE ni DELETE.
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create persiste un asiento. Los IDs opcionales vacíos se guardan como NULL.
func (r *StockTransactionRepo) Create(tx *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions
			(id, kind, source_warehouse_id, destination_warehouse_id, customer_id,
			 product_id, quantity, transfer_mode, notes, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.Kind,
		nullIfEmpty(tx.SourceWarehouseID), nullIfEmpty(tx.DestinationWarehouseID), nullIfEmpty(tx.CustomerID),
		tx.ProductID, tx.Quantity, nullIfEmpty(tx.TransferMode), tx.Notes, tx.PerformedBy, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

const transactionSelect = `
	SELECT id, kind, COALESCE(source_warehouse_id::text, ''), COALESCE(destination_warehouse_id::text, ''),
	       COALESCE(customer_id::text, ''), product_id, quantity, COALESCE(transfer_mode, ''),
	       notes, performed_by, created_at
	FROM stock_transactions`

// GetByID obtiene un asiento por ID; nil si no existe.
func (r *StockTransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	err := r.q.QueryRow(context.Background(), transactionSelect+` WHERE id = $1`, id).Scan(
		&t.ID, &t.Kind, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.CustomerID,
		&t.ProductID, &t.Quantity, &t.TransferMode, &t.Notes, &t.PerformedBy, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return &t, nil
}

// List lista asientos con filtros opcionales, más reciente primero.
func (r *StockTransactionRepo) List(filter repository.TransactionFilter, limit, offset int) ([]*entity.StockTransaction, error) {
	query := transactionSelect + `
		WHERE ($1 = '' OR source_warehouse_id = $1::uuid OR destination_warehouse_id = $1::uuid)
		  AND ($2 = '' OR product_id = $2::uuid)
		  AND ($3 = '' OR kind = $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.WarehouseID, filter.ProductID, filter.Kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		var t entity.StockTransaction
		if err := rows.Scan(&t.ID, &t.Kind, &t.SourceWarehouseID, &t.DestinationWarehouseID,
			&t.CustomerID, &t.ProductID, &t.Quantity, &t.TransferMode, &t.Notes,
			&t.PerformedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte cadena vacía en NULL para columnas opcionales.
func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
