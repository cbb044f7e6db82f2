// Package mail implementa el despacho de notificaciones por email vía SMTP:
// alertas de stock crítico y el reporte diario con PDF adjunto.
package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tu-usuario/bodega-api/internal/application/inventory"
	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
	"gopkg.in/gomail.v2"
)

var (
	_ inventory.AlertNotifier = (*SMTPMailer)(nil)
	_ report.Mailer           = (*SMTPMailer)(nil)
)

// Config conexión SMTP.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer envía alertas de stock crítico y reportes por SMTP (gomail).
// Los destinatarios de una alerta son los administradores activos más los
// usuarios autorizados de la bodega afectada.
type SMTPMailer struct {
	dialer        *gomail.Dialer
	from          string
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
}

// NewSMTPMailer construye el mailer.
func NewSMTPMailer(cfg Config, userRepo repository.UserRepository, warehouseRepo repository.WarehouseRepository) *SMTPMailer {
	return &SMTPMailer{
		dialer:        gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:          cfg.From,
		userRepo:      userRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Notify envía la alerta de stock crítico. Se invoca después del commit; un
// fallo aquí se registra en el caller y nunca afecta la transacción.
func (m *SMTPMailer) Notify(_ context.Context, ev inventory.CriticalStockEvent) error {
	recipients, err := m.alertRecipients(ev.WarehouseID)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Critical Stock Alert - %s - %s", ev.WarehouseName, ev.ProductName)
	body := fmt.Sprintf(`Critical Stock Alert!

Warehouse: %s
Product: %s (%s)
Current Stock: %d
Minimum Stock Level: %d
Time: %s

This is an automated notification. Please take necessary action to replenish the stock.
`, ev.WarehouseName, ev.ProductName, ev.SKU, ev.Quantity, ev.MinimumStock,
		ev.OccurredAt.Format("2006-01-02 15:04:05"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipients...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar alerta de stock: %w", err)
	}
	return nil
}

// SendReport envía el reporte de stock con el PDF adjunto.
func (m *SMTPMailer) SendReport(_ context.Context, to []string, subject, body string, pdf []byte) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach("stock_status_report.pdf",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar reporte de stock: %w", err)
	}
	return nil
}

// alertRecipients = administradores activos ∪ usuarios autorizados de la bodega.
func (m *SMTPMailer) alertRecipients(warehouseID string) ([]string, error) {
	admins, err := m.userRepo.ListAdminEmails()
	if err != nil {
		return nil, fmt.Errorf("resolver admins: %w", err)
	}
	authorized, err := m.warehouseRepo.ListAuthorizedEmails(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("resolver autorizados: %w", err)
	}

	seen := make(map[string]struct{}, len(admins)+len(authorized))
	var out []string
	for _, email := range append(admins, authorized...) {
		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, email)
	}
	return out, nil
}
