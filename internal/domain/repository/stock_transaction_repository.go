package repository

import "github.com/tu-usuario/bodega-api/internal/domain/entity"

// TransactionFilter filtros opcionales para listar transacciones (vacío = sin filtro).
type TransactionFilter struct {
	WarehouseID string // coincide origen o destino
	ProductID   string
	Kind        string
}

// StockTransactionRepository define el puerto de persistencia del libro de transacciones.
// Los asientos son inmutables: solo Create y lecturas, nunca update ni delete.
type StockTransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	List(filter TransactionFilter, limit, offset int) ([]*entity.StockTransaction, error)
}
