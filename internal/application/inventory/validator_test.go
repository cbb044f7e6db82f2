package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
)

const (
	custActive   = "00000000-0000-0000-0000-0000000000c1"
	custInactive = "00000000-0000-0000-0000-0000000000c2"
	actorStaff   = "00000000-0000-0000-0000-0000000000e1"
)

// validatorFixture arma un validador con bodegas, producto y clientes sembrados.
func validatorFixture(policy inventory.AccessPolicy) (*inventory.TransactionValidator, *fakeBalanceRepo) {
	warehouses := &fakeWarehouseRepo{items: map[string]*entity.Warehouse{
		whMain:  {ID: whMain, Name: "Central"},
		whNorth: {ID: whNorth, Name: "Norte"},
	}}
	products := &fakeProductRepo{items: map[string]*entity.Product{
		prodA: {ID: prodA, SKU: "SKU-001", Name: "Tornillo M6", MinimumStock: 10},
	}}
	customers := &fakeCustomerRepo{items: map[string]*entity.Customer{
		custActive:   {ID: custActive, Name: "ACME", Active: true},
		custInactive: {ID: custInactive, Name: "Cerrada SA", Active: false},
	}}
	balances := newFakeBalanceRepo()
	balances.seed(whMain, prodA, 100)
	return inventory.NewTransactionValidator(warehouses, products, customers, balances, policy), balances
}

// wwInput transacción bodega→bodega bien formada.
func wwInput() inventory.TransactionInput {
	return inventory.TransactionInput{
		Kind:                   entity.KindWarehouseToWarehouse,
		SourceWarehouseID:      whMain,
		DestinationWarehouseID: whNorth,
		ProductID:              prodA,
		Quantity:               5,
		TransferMode:           entity.TransferModeTruck,
		ActorID:                actorStaff,
		ActorRole:              entity.RoleStaff,
	}
}

func TestValidator_WWValida(t *testing.T) {
	v, _ := validatorFixture(allowAll)

	res, err := v.Validate(context.Background(), wwInput())
	require.NoError(t, err)
	assert.Equal(t, prodA, res.Product.ID)
	assert.Equal(t, "Central", res.SourceWarehouse.Name)
	assert.Equal(t, "Norte", res.DestinationWarehouse.Name)
	assert.Nil(t, res.Customer)
}

func TestValidator_CantidadNoPositiva(t *testing.T) {
	v, _ := validatorFixture(allowAll)

	for _, qty := range []int64{0, -3} {
		in := wwInput()
		in.Quantity = qty
		_, err := v.Validate(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestValidator_KindYTransferModeInvalidos(t *testing.T) {
	v, _ := validatorFixture(allowAll)

	in := wwInput()
	in.Kind = "XX"
	_, err := v.Validate(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = wwInput()
	in.TransferMode = "TRAIN"
	_, err = v.Validate(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidator_EstructuraPorKind(t *testing.T) {
	v, _ := validatorFixture(allowAll)
	ctx := context.Background()

	// WW sin destino → parte faltante.
	in := wwInput()
	in.DestinationWarehouseID = ""
	_, err := v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrMissingParty)

	// WW con cliente → parte inesperada.
	in = wwInput()
	in.CustomerID = custActive
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnexpectedParty)

	// WW origen == destino → inválida.
	in = wwInput()
	in.DestinationWarehouseID = whMain
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// WC sin cliente → parte faltante.
	in = inventory.TransactionInput{
		Kind:              entity.KindWarehouseToCustomer,
		SourceWarehouseID: whMain,
		ProductID:         prodA,
		Quantity:          5,
		ActorID:           actorStaff,
		ActorRole:         entity.RoleStaff,
	}
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrMissingParty)

	// WC con bodega destino → parte inesperada.
	in.CustomerID = custActive
	in.DestinationWarehouseID = whNorth
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnexpectedParty)

	// CW con bodega origen → parte inesperada.
	in = inventory.TransactionInput{
		Kind:                   entity.KindCustomerToWarehouse,
		SourceWarehouseID:      whMain,
		DestinationWarehouseID: whNorth,
		CustomerID:             custActive,
		ProductID:              prodA,
		Quantity:               5,
		ActorID:                actorStaff,
		ActorRole:              entity.RoleStaff,
	}
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnexpectedParty)
}

func TestValidator_EntidadesInexistentes(t *testing.T) {
	v, _ := validatorFixture(allowAll)
	ctx := context.Background()

	in := wwInput()
	in.ProductID = "00000000-0000-0000-0000-0000000000ff"
	_, err := v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	in = wwInput()
	in.DestinationWarehouseID = "00000000-0000-0000-0000-0000000000ff"
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")

	// Cliente inactivo cuenta como inexistente.
	in = inventory.TransactionInput{
		Kind:              entity.KindWarehouseToCustomer,
		SourceWarehouseID: whMain,
		CustomerID:        custInactive,
		ProductID:         prodA,
		Quantity:          5,
		ActorID:           actorStaff,
		ActorRole:         entity.RoleStaff,
	}
	_, err = v.Validate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente inactivo no puede transar")
}

func TestValidator_AccesoDenegadoParaStaffNoAutorizado(t *testing.T) {
	// Política: el actor solo está autorizado en la bodega central.
	policy := policyFunc(func(_, warehouseID string) bool { return warehouseID == whMain })
	v, _ := validatorFixture(policy)

	_, err := v.Validate(context.Background(), wwInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAccessDenied, "destino no autorizado bloquea la transacción")
}

func TestValidator_AdminOmiteLaPolitica(t *testing.T) {
	denyAll := policyFunc(func(string, string) bool { return false })
	v, _ := validatorFixture(denyAll)

	in := wwInput()
	in.ActorRole = entity.RoleAdmin
	_, err := v.Validate(context.Background(), in)
	assert.NoError(t, err, "admin no consulta la política de acceso")
}

func TestValidator_SaldoOrigen(t *testing.T) {
	v, balances := validatorFixture(allowAll)
	ctx := context.Background()

	// Sin registro en la bodega origen.
	balances.mu.Lock()
	delete(balances.rows, balanceKey(whMain, prodA))
	balances.mu.Unlock()
	_, err := v.Validate(ctx, wwInput())
	assert.ErrorIs(t, err, domain.ErrNoStockRecord)

	// Registro con saldo insuficiente.
	balances.seed(whMain, prodA, 2)
	_, err = v.Validate(ctx, wwInput())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// CW no tiene bodega origen: el saldo no aplica.
	in := inventory.TransactionInput{
		Kind:                   entity.KindCustomerToWarehouse,
		DestinationWarehouseID: whNorth,
		CustomerID:             custActive,
		ProductID:              prodA,
		Quantity:               500,
		ActorID:                actorStaff,
		ActorRole:              entity.RoleStaff,
	}
	_, err = v.Validate(ctx, in)
	assert.NoError(t, err, "una entrada desde cliente no exige saldo previo")
}
