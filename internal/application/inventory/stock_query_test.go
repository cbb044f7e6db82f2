package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// fakeCache cache en memoria que implementa inventory.Cache.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	broken bool
}

func newFakeCache() *fakeCache { return &fakeCache{values: make(map[string]string)} }

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if c.broken {
		return "", errors.New("redis: connection refused")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.broken {
		return errors.New("redis: connection refused")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func TestStockQuery_ListBalancesMarcaCriticos(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.items = []repository.BalanceItem{
		{WarehouseName: "Central", SKU: "SKU-001", Quantity: 50, MinimumStock: 10},
		{WarehouseName: "Central", SKU: "SKU-002", Quantity: 10, MinimumStock: 10},
	}
	uc := inventory.NewStockQueryUseCase(repo, nil)

	out, err := uc.ListBalances("", "", 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.False(t, out.Items[0].Critical)
	assert.True(t, out.Items[1].Critical, "cantidad igual al mínimo cuenta como crítico")
}

func TestStockQuery_SummaryUsaElCache(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.summary = &repository.StockSummary{TotalProducts: 4, TotalWarehouses: 2, TotalBalances: 6, TotalUnits: 120, CriticalCount: 1}
	cache := newFakeCache()
	uc := inventory.NewStockQueryUseCase(repo, cache)
	ctx := context.Background()

	first, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, int(first.TotalUnits))

	// Segunda lectura: servida desde el cache, sin tocar la DB.
	second, err := uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.summaryCalls, "la segunda consulta no llega al repositorio")
}

func TestStockQuery_CacheCaidoNoFallaLaConsulta(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.summary = &repository.StockSummary{TotalProducts: 1, TotalBalances: 1, TotalUnits: 5}
	cache := newFakeCache()
	cache.broken = true
	uc := inventory.NewStockQueryUseCase(repo, cache)

	out, err := uc.Summary(context.Background())
	require.NoError(t, err, "un fallo de Redis degrada a consulta directa")
	assert.Equal(t, int64(5), out.TotalUnits)
}

func TestStockQuery_SinCacheConsultaDirecta(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.summary = &repository.StockSummary{TotalBalances: 3}
	uc := inventory.NewStockQueryUseCase(repo, nil)

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalBalances)
	assert.Equal(t, 1, repo.summaryCalls)
}
