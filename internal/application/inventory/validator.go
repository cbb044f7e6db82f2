package inventory

import (
	"context"

	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// TransactionInput entrada para procesar una transacción de stock.
// Según Kind: WW exige origen y destino (cliente prohibido), WC exige origen y
// cliente (destino prohibido), CW exige destino y cliente (origen prohibido).
type TransactionInput struct {
	Kind                   string
	SourceWarehouseID      string
	DestinationWarehouseID string
	CustomerID             string
	ProductID              string
	Quantity               int64
	TransferMode           string
	Notes                  string
	ActorID                string
	ActorRole              string
}

// Validated resultado de una validación exitosa: entidades ya resueltas que el
// procesador necesita (umbral del producto, nombres de bodega para eventos).
type Validated struct {
	Product              *entity.Product
	SourceWarehouse      *entity.Warehouse
	DestinationWarehouse *entity.Warehouse
	Customer             *entity.Customer
}

// TransactionValidator decide si una transacción propuesta es legal antes de
// cualquier mutación: reglas estructurales por tipo, existencia de las partes,
// autorización del actor y saldo suficiente en la bodega origen.
// Es puro respecto al estado: solo lee, nunca muta.
type TransactionValidator struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	balanceRepo   repository.StockBalanceRepository
	policy        AccessPolicy
}

// NewTransactionValidator construye el validador.
func NewTransactionValidator(
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	balanceRepo repository.StockBalanceRepository,
	policy AccessPolicy,
) *TransactionValidator {
	return &TransactionValidator{
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		balanceRepo:   balanceRepo,
		policy:        policy,
	}
}

// Validate aplica las reglas en orden: cantidad, estructura, existencia, acceso, saldo.
// El chequeo de saldo aquí es el rechazo temprano; el ledger repite el chequeo
// bajo bloqueo de fila como garantía final.
func (v *TransactionValidator) Validate(ctx context.Context, in TransactionInput) (*Validated, error) {
	// Cantidad: se rechaza antes de leer ningún saldo.
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidKind(in.Kind) || !entity.ValidTransferMode(in.TransferMode) {
		return nil, domain.ErrInvalidInput
	}

	if err := v.checkStructure(in); err != nil {
		return nil, err
	}

	res, err := v.resolveParties(in)
	if err != nil {
		return nil, err
	}

	if err := v.checkAccess(ctx, in); err != nil {
		return nil, err
	}

	// Regla de saldo: solo aplica cuando hay bodega origen.
	if in.SourceWarehouseID != "" {
		balance, err := v.balanceRepo.Get(in.SourceWarehouseID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if balance == nil {
			return nil, &domain.NoStockRecordError{WarehouseID: in.SourceWarehouseID, ProductID: in.ProductID}
		}
		if balance.Quantity < in.Quantity {
			return nil, &domain.InsufficientStockError{
				WarehouseID: in.SourceWarehouseID,
				ProductID:   in.ProductID,
				Available:   balance.Quantity,
				Requested:   in.Quantity,
			}
		}
	}

	return res, nil
}

// checkStructure aplica las reglas estructurales por tipo de transacción.
func (v *TransactionValidator) checkStructure(in TransactionInput) error {
	switch in.Kind {
	case entity.KindWarehouseToWarehouse:
		if in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" {
			return domain.ErrMissingParty
		}
		if in.SourceWarehouseID == in.DestinationWarehouseID {
			return domain.ErrInvalidInput
		}
		if in.CustomerID != "" {
			return domain.ErrUnexpectedParty
		}
	case entity.KindWarehouseToCustomer:
		if in.SourceWarehouseID == "" || in.CustomerID == "" {
			return domain.ErrMissingParty
		}
		if in.DestinationWarehouseID != "" {
			return domain.ErrUnexpectedParty
		}
	case entity.KindCustomerToWarehouse:
		if in.DestinationWarehouseID == "" || in.CustomerID == "" {
			return domain.ErrMissingParty
		}
		if in.SourceWarehouseID != "" {
			return domain.ErrUnexpectedParty
		}
	}
	return nil
}

// resolveParties verifica que producto, bodegas y cliente existan.
func (v *TransactionValidator) resolveParties(in TransactionInput) (*Validated, error) {
	res := &Validated{}

	product, err := v.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	res.Product = product

	if in.SourceWarehouseID != "" {
		wh, err := v.warehouseRepo.GetByID(in.SourceWarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		res.SourceWarehouse = wh
	}
	if in.DestinationWarehouseID != "" {
		wh, err := v.warehouseRepo.GetByID(in.DestinationWarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrNotFound
		}
		res.DestinationWarehouse = wh
	}
	if in.CustomerID != "" {
		customer, err := v.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || !customer.Active {
			return nil, domain.ErrNotFound
		}
		res.Customer = customer
	}
	return res, nil
}

// checkAccess exige autorización del actor sobre cada bodega referenciada,
// salvo privilegio administrativo.
func (v *TransactionValidator) checkAccess(ctx context.Context, in TransactionInput) error {
	if in.ActorRole == entity.RoleAdmin {
		return nil
	}
	for _, warehouseID := range []string{in.SourceWarehouseID, in.DestinationWarehouseID} {
		if warehouseID == "" {
			continue
		}
		ok, err := v.policy.IsAuthorized(ctx, in.ActorID, warehouseID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.AccessDeniedError{ActorID: in.ActorID, WarehouseID: warehouseID}
		}
	}
	return nil
}
