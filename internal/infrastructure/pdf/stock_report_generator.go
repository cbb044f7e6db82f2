// Package pdf implementa la generación del reporte diario de estado de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total de saldos / Saldos en nivel crítico          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Bodega | SKU | Producto | Cantidad | Mínimo | Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de generación automática                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/bodega-api/internal/application/report"
	"github.com/tu-usuario/bodega-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type StockReportPDFGenerator struct{}

// NewStockReportPDFGenerator construye el generador.
func NewStockReportPDFGenerator() *StockReportPDFGenerator { return &StockReportPDFGenerator{} }

// GenerateStockReport genera el PDF del reporte y devuelve sus bytes.
func (g *StockReportPDFGenerator) GenerateStockReport(data *report.StockReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Estado de Stock", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de saldos
	m.AddRows(tableHeaderRow())
	for _, r := range tableBalanceRows(data.Balances) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del reporte (izq) y fecha de generación (der).
func headerRow(data *report.StockReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(7).Add(
			text.New("REPORTE DE ESTADO DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Saldos por bodega y producto", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: conteos totales y de saldos críticos.
func summaryRow(data *report.StockReportData) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Saldos registrados: %d   |   En nivel crítico: %d",
				data.TotalCount, data.CriticalCount,
			), props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de saldos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Bodega", 3, align.Left),
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Cantidad", 1, align.Right),
		h("Mínimo", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

// tableBalanceRows: una fila por saldo; los críticos van resaltados en rojo.
func tableBalanceRows(balances []repository.BalanceItem) []core.Row {
	result := make([]core.Row, 0, len(balances))
	for _, b := range balances {
		estado := "OK"
		qtyColor := (*props.Color)(nil)
		if b.Quantity <= b.MinimumStock {
			estado = "CRÍTICO"
			qtyColor = colorCritical
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(
				b.WarehouseName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				b.SKU,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				b.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(b.Quantity, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor},
			)),
			col.New(1).Add(text.New(
				strconv.FormatInt(b.MinimumStock, 10),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				estado,
				props.Text{
					Style: fontstyle.Bold, Size: 8, Align: align.Center,
					Top: 1, Color: qtyColor,
				},
			)),
		))
	}
	return result
}

// footerRow: leyenda de generación automática.
func footerRow(data *report.StockReportData) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf(
				"Reporte generado automáticamente el %s. Los saldos en nivel crítico requieren reposición.",
				data.GeneratedAt.Format("02/01/2006"),
			), props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
		),
	)
}
