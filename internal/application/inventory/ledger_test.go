package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/domain"
)

const (
	whMain  = "00000000-0000-0000-0000-00000000000a"
	whNorth = "00000000-0000-0000-0000-00000000000b"
	prodA   = "00000000-0000-0000-0000-0000000000f1"
)

func TestLedger_Balance_SinFilaEsCeroImplicito(t *testing.T) {
	ledger := inventory.NewStockLedger(newFakeBalanceRepo())

	qty, err := ledger.Balance(whMain, prodA)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty, "sin fila el saldo implícito es 0")
}

func TestLedger_Credit_CreaFilaEnPrimerUso(t *testing.T) {
	repo := newFakeBalanceRepo()
	ledger := inventory.NewStockLedger(repo)

	resulting, err := ledger.Credit(whMain, prodA, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(40), resulting)
	assert.Equal(t, int64(40), repo.quantity(whMain, prodA))

	// Segundo crédito acumula sobre la fila existente.
	resulting, err = ledger.Credit(whMain, prodA, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(50), resulting)
}

func TestLedger_Debit_SinFilaRetornaNoStockRecord(t *testing.T) {
	ledger := inventory.NewStockLedger(newFakeBalanceRepo())

	_, err := ledger.Debit(whMain, prodA, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoStockRecord,
		"debitar sin registro de stock no es lo mismo que stock insuficiente")

	var noRecord *domain.NoStockRecordError
	require.True(t, errors.As(err, &noRecord))
	assert.Equal(t, whMain, noRecord.WarehouseID)
	assert.Equal(t, prodA, noRecord.ProductID)
}

func TestLedger_Debit_SaldoInsuficienteNoMuta(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(whMain, prodA, 3)
	ledger := inventory.NewStockLedger(repo)

	_, err := ledger.Debit(whMain, prodA, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(3), insufficient.Available)
	assert.Equal(t, int64(5), insufficient.Requested)

	assert.Equal(t, int64(3), repo.quantity(whMain, prodA), "un débito rechazado no muta el saldo")
}

func TestLedger_Debit_ExactoDejaSaldoEnCero(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(whMain, prodA, 5)
	ledger := inventory.NewStockLedger(repo)

	resulting, err := ledger.Debit(whMain, prodA, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resulting, "saldo igual a la cantidad es un débito válido")
}

func TestLedger_MontosNoPositivosRechazados(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(whMain, prodA, 10)
	ledger := inventory.NewStockLedger(repo)

	for _, amount := range []int64{0, -1} {
		_, err := ledger.Credit(whMain, prodA, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		_, err = ledger.Debit(whMain, prodA, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestLedger_ParesDisjuntosNoSeInterfieren(t *testing.T) {
	repo := newFakeBalanceRepo()
	repo.seed(whMain, prodA, 10)
	repo.seed(whNorth, prodA, 20)
	ledger := inventory.NewStockLedger(repo)

	_, err := ledger.Debit(whMain, prodA, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(6), repo.quantity(whMain, prodA))
	assert.Equal(t, int64(20), repo.quantity(whNorth, prodA), "el saldo de otra bodega no cambia")
}
