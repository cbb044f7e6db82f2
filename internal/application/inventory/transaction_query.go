package inventory

import (
	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// TransactionQueryUseCase lecturas del libro de transacciones (los asientos son inmutables).
type TransactionQueryUseCase struct {
	txRepo repository.StockTransactionRepository
}

// NewTransactionQueryUseCase construye el caso de uso.
func NewTransactionQueryUseCase(txRepo repository.StockTransactionRepository) *TransactionQueryUseCase {
	return &TransactionQueryUseCase{txRepo: txRepo}
}

// GetByID obtiene un asiento por ID; nil si no existe.
func (uc *TransactionQueryUseCase) GetByID(id string) (*dto.StockTransactionResponse, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, nil
	}
	return ToTransactionResponse(tx), nil
}

// List lista asientos con filtros opcionales y paginación.
func (uc *TransactionQueryUseCase) List(filter repository.TransactionFilter, limit, offset int) (*dto.StockTransactionListResponse, error) {
	list, err := uc.txRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockTransactionResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, *ToTransactionResponse(tx))
	}
	return &dto.StockTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ToTransactionResponse convierte la entidad al DTO de salida.
func ToTransactionResponse(tx *entity.StockTransaction) *dto.StockTransactionResponse {
	if tx == nil {
		return nil
	}
	return &dto.StockTransactionResponse{
		ID:                     tx.ID,
		Kind:                   tx.Kind,
		SourceWarehouseID:      tx.SourceWarehouseID,
		DestinationWarehouseID: tx.DestinationWarehouseID,
		CustomerID:             tx.CustomerID,
		ProductID:              tx.ProductID,
		Quantity:               tx.Quantity,
		TransferMode:           tx.TransferMode,
		Notes:                  tx.Notes,
		PerformedBy:            tx.PerformedBy,
		CreatedAt:              tx.CreatedAt,
	}
}
