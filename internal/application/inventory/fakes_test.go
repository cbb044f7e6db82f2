package inventory_test

import (
	"context"
	"sync"

	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests del paquete
// ──────────────────────────────────────────────────────────────────────────────

func balanceKey(warehouseID, productID string) string {
	return warehouseID + "|" + productID
}

// fakeBalanceRepo repositorio de saldos en memoria.
type fakeBalanceRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.StockBalance

	items        []repository.BalanceItem
	summary      *repository.StockSummary
	summaryCalls int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{rows: make(map[string]*entity.StockBalance)}
}

func (r *fakeBalanceRepo) seed(warehouseID, productID string, quantity int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[balanceKey(warehouseID, productID)] = &entity.StockBalance{
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    quantity,
	}
}

func (r *fakeBalanceRepo) quantity(warehouseID, productID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.rows[balanceKey(warehouseID, productID)]; ok {
		return b.Quantity
	}
	return 0
}

func (r *fakeBalanceRepo) Get(warehouseID, productID string) (*entity.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[balanceKey(warehouseID, productID)]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBalanceRepo) GetForUpdate(warehouseID, productID string) (*entity.StockBalance, error) {
	return r.Get(warehouseID, productID)
}

func (r *fakeBalanceRepo) Upsert(balance *entity.StockBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *balance
	r.rows[balanceKey(balance.WarehouseID, balance.ProductID)] = &copied
	return nil
}

func (r *fakeBalanceRepo) List(string, string, int, int) ([]repository.BalanceItem, error) {
	return r.items, nil
}

func (r *fakeBalanceRepo) ListCritical() ([]repository.BalanceItem, error) { return r.items, nil }

func (r *fakeBalanceRepo) ListAll() ([]repository.BalanceItem, error) { return r.items, nil }

func (r *fakeBalanceRepo) Summary() (*repository.StockSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaryCalls++
	return r.summary, nil
}

// fakeTxRepo libro de transacciones en memoria; createErr fuerza fallo de commit.
type fakeTxRepo struct {
	mu        sync.Mutex
	records   []*entity.StockTransaction
	createErr error
}

func (r *fakeTxRepo) Create(tx *entity.StockTransaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, tx)
	return nil
}

func (r *fakeTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.records {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, nil
}

func (r *fakeTxRepo) List(repository.TransactionFilter, int, int) ([]*entity.StockTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.StockTransaction(nil), r.records...), nil
}

func (r *fakeTxRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// fakeTxRunner emula la transacción SQL: si fn falla, restaura el estado previo
// de los saldos y del libro (rollback).
type fakeTxRunner struct {
	balances *fakeBalanceRepo
	txs      *fakeTxRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	balanceRepo repository.StockBalanceRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	tr.balances.mu.Lock()
	snapshot := make(map[string]*entity.StockBalance, len(tr.balances.rows))
	for k, v := range tr.balances.rows {
		copied := *v
		snapshot[k] = &copied
	}
	tr.balances.mu.Unlock()
	recordsBefore := tr.txs.count()

	if err := fn(tr.balances, tr.txs); err != nil {
		tr.balances.mu.Lock()
		tr.balances.rows = snapshot
		tr.balances.mu.Unlock()
		tr.txs.mu.Lock()
		tr.txs.records = tr.txs.records[:recordsBefore]
		tr.txs.mu.Unlock()
		return err
	}
	return nil
}

// fakeWarehouseRepo bodegas en memoria (solo GetByID importa para el validador).
type fakeWarehouseRepo struct {
	items map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { r.items[w.ID] = w; return nil }
func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.items[id], nil
}
func (r *fakeWarehouseRepo) Update(*entity.Warehouse) error                  { return nil }
func (r *fakeWarehouseRepo) List(int, int) ([]*entity.Warehouse, error)      { return nil, nil }
func (r *fakeWarehouseRepo) Delete(string) error                             { return nil }
func (r *fakeWarehouseRepo) AddAuthorizedUser(string, string) error          { return nil }
func (r *fakeWarehouseRepo) RemoveAuthorizedUser(string, string) error       { return nil }
func (r *fakeWarehouseRepo) ListAuthorizedEmails(string) ([]string, error)   { return nil, nil }

// fakeProductRepo productos en memoria.
type fakeProductRepo struct {
	items map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.items[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error             { return nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Delete(string) error                      { return nil }

// fakeCustomerRepo clientes en memoria.
type fakeCustomerRepo struct {
	items map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.items[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.items[id], nil
}
func (r *fakeCustomerRepo) Update(*entity.Customer) error             { return nil }
func (r *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error) { return nil, nil }

// policyFunc adapta una función a inventory.AccessPolicy.
type policyFunc func(actorID, warehouseID string) bool

func (f policyFunc) IsAuthorized(_ context.Context, actorID, warehouseID string) (bool, error) {
	return f(actorID, warehouseID), nil
}

// allowAll política que autoriza cualquier par actor/bodega.
var allowAll = policyFunc(func(string, string) bool { return true })
