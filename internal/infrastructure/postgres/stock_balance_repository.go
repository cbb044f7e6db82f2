package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual; nil si no existe fila (el validador distingue
// "sin registro" de "insuficiente").
func (r *StockBalanceRepo) Get(warehouseID, productID string) (*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock_balances WHERE warehouse_id = $1 AND product_id = $2`
	return r.scanOne(query, warehouseID, productID)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE); nil si no existe.
// El bloqueo serializa transacciones concurrentes sobre el mismo par (bodega, producto).
func (r *StockBalanceRepo) GetForUpdate(warehouseID, productID string) (*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, product_id, quantity, updated_at
		FROM stock_balances WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scanOne(query, warehouseID, productID)
}

func (r *StockBalanceRepo) scanOne(query, warehouseID, productID string) (*entity.StockBalance, error) {
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, warehouseID, productID).Scan(
		&b.WarehouseID, &b.ProductID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza la cantidad del saldo (por bodega y producto).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.WarehouseID, balance.ProductID, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

const balanceItemSelect = `
	SELECT sb.warehouse_id, w.name, sb.product_id, p.sku, p.name, sb.quantity, p.minimum_stock
	FROM stock_balances sb
	JOIN warehouses w ON w.id = sb.warehouse_id
	JOIN products p ON p.id = sb.product_id`

// List lista saldos con filtros opcionales por bodega y producto.
func (r *StockBalanceRepo) List(warehouseID, productID string, limit, offset int) ([]repository.BalanceItem, error) {
	query := balanceItemSelect + `
		WHERE ($1 = '' OR sb.warehouse_id = $1::uuid)
		  AND ($2 = '' OR sb.product_id = $2::uuid)
		ORDER BY w.name, p.sku LIMIT $3 OFFSET $4`
	return r.scanItems(query, warehouseID, productID, limit, offset)
}

// ListCritical devuelve los saldos en o bajo el mínimo del producto.
func (r *StockBalanceRepo) ListCritical() ([]repository.BalanceItem, error) {
	query := balanceItemSelect + `
		WHERE sb.quantity <= p.minimum_stock
		ORDER BY (p.minimum_stock - sb.quantity) DESC`
	return r.scanItems(query)
}

// ListAll devuelve todos los saldos con producto y bodega (reporte diario).
func (r *StockBalanceRepo) ListAll() ([]repository.BalanceItem, error) {
	return r.scanItems(balanceItemSelect + ` ORDER BY w.name, p.sku`)
}

func (r *StockBalanceRepo) scanItems(query string, args ...any) ([]repository.BalanceItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var items []repository.BalanceItem
	for rows.Next() {
		var it repository.BalanceItem
		if err := rows.Scan(&it.WarehouseID, &it.WarehouseName, &it.ProductID, &it.SKU,
			&it.ProductName, &it.Quantity, &it.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Summary calcula los agregados globales de stock en una sola consulta.
func (r *StockBalanceRepo) Summary() (*repository.StockSummary, error) {
	query := `
		SELECT
			(SELECT count(*) FROM products),
			(SELECT count(*) FROM warehouses),
			count(sb.*),
			COALESCE(sum(sb.quantity), 0),
			count(sb.*) FILTER (WHERE sb.quantity <= p.minimum_stock)
		FROM stock_balances sb
		JOIN products p ON p.id = sb.product_id`
	var s repository.StockSummary
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalProducts, &s.TotalWarehouses, &s.TotalBalances, &s.TotalUnits, &s.CriticalCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return &s, nil
}
