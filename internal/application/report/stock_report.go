package report

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// StockReportData datos del reporte de estado de stock.
type StockReportData struct {
	GeneratedAt   time.Time
	Balances      []repository.BalanceItem
	TotalCount    int
	CriticalCount int
}

// PDFGenerator convierte los datos del reporte en un PDF.
type PDFGenerator interface {
	GenerateStockReport(data *StockReportData) ([]byte, error)
}

// Mailer envía el reporte por email con el PDF adjunto.
type Mailer interface {
	SendReport(ctx context.Context, to []string, subject, body string, pdf []byte) error
}

// StockReportUseCase genera el reporte diario de estado de stock (todos los
// saldos, conteo de críticos) y lo envía por email a los administradores.
// Reemplaza el job periódico delegado a la cola de tareas del sistema original.
type StockReportUseCase struct {
	balanceRepo repository.StockBalanceRepository
	userRepo    repository.UserRepository
	pdf         PDFGenerator
	mailer      Mailer
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(
	balanceRepo repository.StockBalanceRepository,
	userRepo repository.UserRepository,
	pdf PDFGenerator,
	mailer Mailer,
) *StockReportUseCase {
	return &StockReportUseCase{
		balanceRepo: balanceRepo,
		userRepo:    userRepo,
		pdf:         pdf,
		mailer:      mailer,
	}
}

// Generate arma los datos del reporte y devuelve el PDF renderizado.
// Lee el estado final de los saldos; no muta nada.
func (uc *StockReportUseCase) Generate(_ context.Context) (*StockReportData, []byte, error) {
	balances, err := uc.balanceRepo.ListAll()
	if err != nil {
		return nil, nil, fmt.Errorf("listar saldos para reporte: %w", err)
	}
	data := &StockReportData{
		GeneratedAt: time.Now(),
		Balances:    balances,
		TotalCount:  len(balances),
	}
	for _, b := range balances {
		if b.Quantity <= b.MinimumStock {
			data.CriticalCount++
		}
	}
	pdf, err := uc.pdf.GenerateStockReport(data)
	if err != nil {
		return nil, nil, fmt.Errorf("generar PDF del reporte: %w", err)
	}
	return data, pdf, nil
}

// SendDaily genera el reporte y lo envía a los administradores activos.
func (uc *StockReportUseCase) SendDaily(ctx context.Context) error {
	data, pdf, err := uc.Generate(ctx)
	if err != nil {
		return err
	}
	recipients, err := uc.userRepo.ListAdminEmails()
	if err != nil {
		return fmt.Errorf("resolver destinatarios del reporte: %w", err)
	}
	if len(recipients) == 0 {
		return domain.ErrUserNotFound
	}
	subject := fmt.Sprintf("Daily Stock Report - %s", data.GeneratedAt.Format("2006-01-02"))
	body := "Please find attached the daily stock status report."
	return uc.mailer.SendReport(ctx, recipients, subject, body, pdf)
}
