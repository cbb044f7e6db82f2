package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

// TransactionProcessor orquesta una transferencia como unidad todo-o-nada:
// validar → aplicar débitos/créditos vía ledger → persistir el asiento →
// chequear umbrales sobre los saldos resultantes → despachar alertas.
//
// No es idempotente por diseño: cada llamada aceptada crea un asiento nuevo y
// un delta de saldo nuevo; deduplicar reintentos es responsabilidad del caller.
type TransactionProcessor struct {
	txRunner  TxRunner
	validator *TransactionValidator
	notifier  AlertNotifier
	log       *logger.Logger
}

// NewTransactionProcessor construye el procesador.
func NewTransactionProcessor(
	txRunner TxRunner,
	validator *TransactionValidator,
	notifier AlertNotifier,
	log *logger.Logger,
) *TransactionProcessor {
	return &TransactionProcessor{
		txRunner:  txRunner,
		validator: validator,
		notifier:  notifier,
		log:       log,
	}
}

// touchedBalance saldo resultante de una bodega tocada por la transacción.
type touchedBalance struct {
	warehouse *entity.Warehouse
	quantity  int64
}

// Process valida y aplica una transacción de stock. La validación, los deltas de
// saldo y el asiento se confirman en una sola transacción SQL; si la validación
// falla no ocurre ninguna mutación y no se crea asiento. Las alertas de stock
// crítico se despachan después del commit y nunca lo bloquean ni lo fallan.
func (p *TransactionProcessor) Process(ctx context.Context, in TransactionInput) (*entity.StockTransaction, error) {
	validated, err := p.validator.Validate(ctx, in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.StockTransaction{
		ID:                     uuid.New().String(),
		Kind:                   in.Kind,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		CustomerID:             in.CustomerID,
		ProductID:              in.ProductID,
		Quantity:               in.Quantity,
		TransferMode:           in.TransferMode,
		Notes:                  in.Notes,
		PerformedBy:            in.ActorID,
		CreatedAt:              now,
	}

	var touched []touchedBalance
	err = p.txRunner.Run(ctx, func(
		balanceRepo repository.StockBalanceRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		ledger := NewStockLedger(balanceRepo)
		touched = touched[:0]

		switch in.Kind {
		case entity.KindWarehouseToWarehouse:
			remaining, err := ledger.Debit(in.SourceWarehouseID, in.ProductID, in.Quantity)
			if err != nil {
				return err
			}
			touched = append(touched, touchedBalance{validated.SourceWarehouse, remaining})
			resulting, err := ledger.Credit(in.DestinationWarehouseID, in.ProductID, in.Quantity)
			if err != nil {
				return err
			}
			touched = append(touched, touchedBalance{validated.DestinationWarehouse, resulting})
		case entity.KindWarehouseToCustomer:
			remaining, err := ledger.Debit(in.SourceWarehouseID, in.ProductID, in.Quantity)
			if err != nil {
				return err
			}
			touched = append(touched, touchedBalance{validated.SourceWarehouse, remaining})
		case entity.KindCustomerToWarehouse:
			resulting, err := ledger.Credit(in.DestinationWarehouseID, in.ProductID, in.Quantity)
			if err != nil {
				return err
			}
			touched = append(touched, touchedBalance{validated.DestinationWarehouse, resulting})
		}

		return txRepo.Create(record)
	})
	if err != nil {
		if isRejection(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}

	events := p.thresholdEvents(validated.Product, touched, now)
	if len(events) > 0 {
		go p.dispatchAlerts(events)
	}

	return record, nil
}

// thresholdEvents evalúa el umbral sobre cada saldo tocado: resulting <= minimumStock
// emite un evento por bodega. Es notificación, no rechazo: la transacción ya confirmó.
func (p *TransactionProcessor) thresholdEvents(product *entity.Product, touched []touchedBalance, at time.Time) []CriticalStockEvent {
	var events []CriticalStockEvent
	for _, t := range touched {
		if t.quantity > product.MinimumStock {
			continue
		}
		events = append(events, CriticalStockEvent{
			WarehouseID:   t.warehouse.ID,
			WarehouseName: t.warehouse.Name,
			ProductID:     product.ID,
			SKU:           product.SKU,
			ProductName:   product.Name,
			Quantity:      t.quantity,
			MinimumStock:  product.MinimumStock,
			OccurredAt:    at,
		})
	}
	return events
}

// dispatchAlerts envía los eventos fuera de la ruta del commit; los fallos del
// notificador se registran y se continúa.
func (p *TransactionProcessor) dispatchAlerts(events []CriticalStockEvent) {
	ctx := context.Background()
	for _, ev := range events {
		if err := p.notifier.Notify(ctx, ev); err != nil {
			p.log.Error().Err(err).
				Str("warehouse_id", ev.WarehouseID).
				Str("product_id", ev.ProductID).
				Int64("quantity", ev.Quantity).
				Msg("fallo al despachar alerta de stock crítico")
		}
	}
}

// isRejection distingue un rechazo de dominio (se propaga tal cual) de un fallo
// de infraestructura (se envuelve como ErrCommitFailed).
func isRejection(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidQuantity,
		domain.ErrInvalidInput,
		domain.ErrMissingParty,
		domain.ErrUnexpectedParty,
		domain.ErrNoStockRecord,
		domain.ErrInsufficientStock,
		domain.ErrAccessDenied,
		domain.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
