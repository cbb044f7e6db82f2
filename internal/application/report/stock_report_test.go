package report_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/domain"
	"github.com/tu-usuario/bodega-api/internal/domain/entity"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// MockBalanceRepo mock del repositorio de saldos (solo ListAll importa aquí).
type MockBalanceRepo struct {
	mock.Mock
}

func (m *MockBalanceRepo) Get(w, p string) (*entity.StockBalance, error)          { return nil, nil }
func (m *MockBalanceRepo) GetForUpdate(w, p string) (*entity.StockBalance, error) { return nil, nil }
func (m *MockBalanceRepo) Upsert(*entity.StockBalance) error                      { return nil }
func (m *MockBalanceRepo) List(string, string, int, int) ([]repository.BalanceItem, error) {
	return nil, nil
}
func (m *MockBalanceRepo) ListCritical() ([]repository.BalanceItem, error) { return nil, nil }
func (m *MockBalanceRepo) Summary() (*repository.StockSummary, error)      { return nil, nil }

func (m *MockBalanceRepo) ListAll() ([]repository.BalanceItem, error) {
	args := m.Called()
	return args.Get(0).([]repository.BalanceItem), args.Error(1)
}

// MockUserRepo mock del repositorio de usuarios (solo ListAdminEmails importa aquí).
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(*entity.User) error                  { return nil }
func (m *MockUserRepo) GetByID(string) (*entity.User, error)       { return nil, nil }
func (m *MockUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (m *MockUserRepo) Update(*entity.User) error                  { return nil }
func (m *MockUserRepo) List(int, int) ([]*entity.User, error)      { return nil, nil }
func (m *MockUserRepo) Delete(string) error                        { return nil }

func (m *MockUserRepo) ListAdminEmails() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

// MockPDFGenerator mock del generador de PDF.
type MockPDFGenerator struct {
	mock.Mock
}

func (m *MockPDFGenerator) GenerateStockReport(data *report.StockReportData) ([]byte, error) {
	args := m.Called(data)
	return args.Get(0).([]byte), args.Error(1)
}

// MockMailer mock del envío de correo.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendReport(ctx context.Context, to []string, subject, body string, pdf []byte) error {
	args := m.Called(ctx, to, subject, body, pdf)
	return args.Error(0)
}

func sampleBalances() []repository.BalanceItem {
	return []repository.BalanceItem{
		{WarehouseName: "Central", SKU: "SKU-001", ProductName: "Tornillo M6", Quantity: 50, MinimumStock: 10},
		{WarehouseName: "Central", SKU: "SKU-002", ProductName: "Tuerca M6", Quantity: 8, MinimumStock: 10},
		{WarehouseName: "Norte", SKU: "SKU-001", ProductName: "Tornillo M6", Quantity: 10, MinimumStock: 10},
	}
}

func TestGenerate_CuentaSaldosYCriticos(t *testing.T) {
	balanceRepo := new(MockBalanceRepo)
	userRepo := new(MockUserRepo)
	pdfGen := new(MockPDFGenerator)

	balanceRepo.On("ListAll").Return(sampleBalances(), nil)
	pdfGen.On("GenerateStockReport", mock.AnythingOfType("*report.StockReportData")).
		Return([]byte("%PDF-fake"), nil)

	uc := report.NewStockReportUseCase(balanceRepo, userRepo, pdfGen, nil)

	data, pdf, err := uc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, data.TotalCount)
	// SKU-002 con 8 <= 10 y Norte con 10 <= 10 cuentan como críticos.
	assert.Equal(t, 2, data.CriticalCount)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.False(t, data.GeneratedAt.IsZero())
}

func TestSendDaily_EnviaALosAdmins(t *testing.T) {
	balanceRepo := new(MockBalanceRepo)
	userRepo := new(MockUserRepo)
	pdfGen := new(MockPDFGenerator)
	mailer := new(MockMailer)

	balanceRepo.On("ListAll").Return(sampleBalances(), nil)
	pdfGen.On("GenerateStockReport", mock.Anything).Return([]byte("%PDF-fake"), nil)
	userRepo.On("ListAdminEmails").Return([]string{"admin@bodega.local"}, nil)
	mailer.On("SendReport",
		mock.Anything,
		[]string{"admin@bodega.local"},
		mock.MatchedBy(func(subject string) bool {
			return strings.HasPrefix(subject, "Daily Stock Report - ")
		}),
		"Please find attached the daily stock status report.",
		[]byte("%PDF-fake"),
	).Return(nil)

	uc := report.NewStockReportUseCase(balanceRepo, userRepo, pdfGen, mailer)

	err := uc.SendDaily(context.Background())
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestSendDaily_SinAdminsFalla(t *testing.T) {
	balanceRepo := new(MockBalanceRepo)
	userRepo := new(MockUserRepo)
	pdfGen := new(MockPDFGenerator)
	mailer := new(MockMailer)

	balanceRepo.On("ListAll").Return(sampleBalances(), nil)
	pdfGen.On("GenerateStockReport", mock.Anything).Return([]byte("x"), nil)
	userRepo.On("ListAdminEmails").Return([]string{}, nil)

	uc := report.NewStockReportUseCase(balanceRepo, userRepo, pdfGen, mailer)

	err := uc.SendDaily(context.Background())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	mailer.AssertNotCalled(t, "SendReport")
}

func TestGenerate_FalloDelListadoSePropaga(t *testing.T) {
	balanceRepo := new(MockBalanceRepo)
	userRepo := new(MockUserRepo)
	pdfGen := new(MockPDFGenerator)

	balanceRepo.On("ListAll").Return([]repository.BalanceItem(nil), errors.New("db down"))

	uc := report.NewStockReportUseCase(balanceRepo, userRepo, pdfGen, nil)

	_, _, err := uc.Generate(context.Background())
	require.Error(t, err)
	pdfGen.AssertNotCalled(t, "GenerateStockReport")
}
