package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// summaryCacheKey clave y TTL del resumen agregado en cache.
const (
	summaryCacheKey = "stock:summary"
	summaryCacheTTL = 60 * time.Second
)

// Cache contrato mínimo que necesita el caso de uso para cachear agregados.
// Lo implementa el cliente Redis; la interfaz evita acoplar al driver.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// StockQueryUseCase lecturas de saldos: listados, stock crítico y resumen agregado.
type StockQueryUseCase struct {
	balanceRepo repository.StockBalanceRepository
	cache       Cache
}

// NewStockQueryUseCase construye el caso de uso. cache puede ser nil (sin Redis).
func NewStockQueryUseCase(balanceRepo repository.StockBalanceRepository, cache Cache) *StockQueryUseCase {
	return &StockQueryUseCase{balanceRepo: balanceRepo, cache: cache}
}

// ListBalances lista saldos con filtros opcionales por bodega y producto.
func (uc *StockQueryUseCase) ListBalances(warehouseID, productID string, limit, offset int) (*dto.StockBalanceListResponse, error) {
	items, err := uc.balanceRepo.List(warehouseID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.StockBalanceListResponse{
		Items: toBalanceDTOs(items),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListCritical lista los saldos en o bajo el mínimo del producto.
func (uc *StockQueryUseCase) ListCritical() ([]dto.StockBalanceResponse, error) {
	items, err := uc.balanceRepo.ListCritical()
	if err != nil {
		return nil, err
	}
	return toBalanceDTOs(items), nil
}

// Summary devuelve los agregados globales de stock, cacheados en Redis con TTL corto.
// Un fallo del cache nunca falla la consulta: se recalcula contra la DB.
func (uc *StockQueryUseCase) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, summaryCacheKey); err == nil && raw != "" {
			var cached dto.StockSummaryResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	summary, err := uc.balanceRepo.Summary()
	if err != nil {
		return nil, err
	}
	out := &dto.StockSummaryResponse{
		TotalProducts:   summary.TotalProducts,
		TotalWarehouses: summary.TotalWarehouses,
		TotalBalances:   summary.TotalBalances,
		TotalUnits:      summary.TotalUnits,
		CriticalCount:   summary.CriticalCount,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			_ = uc.cache.Set(ctx, summaryCacheKey, string(raw), summaryCacheTTL)
		}
	}
	return out, nil
}

func toBalanceDTOs(items []repository.BalanceItem) []dto.StockBalanceResponse {
	out := make([]dto.StockBalanceResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockBalanceResponse{
			WarehouseID:   it.WarehouseID,
			WarehouseName: it.WarehouseName,
			ProductID:     it.ProductID,
			SKU:           it.SKU,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			MinimumStock:  it.MinimumStock,
			Critical:      it.Quantity <= it.MinimumStock,
		})
	}
	return out
}
