package mail

import (
	"context"

	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/pkg/logger"
)

var _ inventory.AlertNotifier = (*LogNotifier)(nil)

// LogNotifier registra las alertas en el log en lugar de enviarlas.
// Se usa cuando no hay SMTP configurado (entornos de desarrollo).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify escribe el evento como warning estructurado.
func (n *LogNotifier) Notify(_ context.Context, ev inventory.CriticalStockEvent) error {
	n.log.Warn().
		Str("warehouse", ev.WarehouseName).
		Str("sku", ev.SKU).
		Int64("quantity", ev.Quantity).
		Int64("minimum_stock", ev.MinimumStock).
		Msg("stock crítico")
	return nil
}
