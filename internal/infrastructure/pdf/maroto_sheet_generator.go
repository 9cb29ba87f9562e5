// Package pdf implementa la hoja de producción imprimible para el piso de
// empaque: tareas abiertas por columna más la demanda agregada por SKU.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Hoja de Producción + fecha                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA TAREAS: SKU | Producto | Cant | Columna | Operación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA DEMANDA: SKU | Total | Urgente | Mañana               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"
	"time"

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

	"github.com/stokespro/cake-crm-sub002/internal/application/dto"
	apppackaging "github.com/stokespro/cake-crm-sub002/internal/application/packaging"
)

var _ apppackaging.ProductionSheetGenerator = (*MarotoSheetGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 92, Green: 46, Blue: 145}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSheetGenerator implementa ProductionSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GenerateProductionSheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateProductionSheet(
	_ context.Context,
	date time.Time,
	tasks []dto.TaskResponse,
	summary dto.DemandSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Producción", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitleRow("TAREAS DE EMPAQUE ABIERTAS"))
	m.AddRows(taskHeaderRow())
	for _, t := range tasks {
		m.AddRows(taskRow(t))
	}
	if len(tasks) == 0 {
		m.AddRows(emptyRow("Sin tareas abiertas"))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("DEMANDA ABIERTA POR SKU"))
	m.AddRows(demandHeaderRow())
	for _, code := range sortedCodes(summary) {
		m.AddRows(demandRow(code, summary[code]))
	}
	if len(summary) == 0 {
		m.AddRows(emptyRow("Sin pedidos abiertos"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(date time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("HOJA DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Fecha: "+date.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
		})),
	)
}

func taskHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("SKU", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Cant.", 1, align.Center),
		h("Columna", 2, align.Center),
		h("Operación", 2, align.Center),
	)
}

func taskRow(t dto.TaskResponse) core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New(t.SKUCode, props.Text{Size: 8, Top: 1})),
		col.New(5).Add(text.New(t.SKUName, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(fmt.Sprintf("%d", t.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(t.CurrentColumn, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(t.TaskType, props.Text{Size: 8, Align: align.Center, Top: 1})),
	)
}

func demandHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("SKU", 3, align.Left),
		h("Total", 3, align.Right),
		h("Urgente (hoy o vencido)", 3, align.Right),
		h("Mañana", 3, align.Right),
	)
}

func demandRow(code string, e dto.DemandEntry) core.Row {
	n := func(v int64, size int) core.Col {
		return col.New(size).Add(text.New(fmt.Sprintf("%d", v), props.Text{
			Size: 8, Align: align.Right, Top: 1,
		}))
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(code, props.Text{Size: 8, Top: 1})),
		n(e.Total, 3),
		n(e.Urgent, 3),
		n(e.Tomorrow, 3),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(msg, props.Text{
			Size: 8, Color: colorGray, Top: 1,
		})),
	)
}

// sortedCodes orden estable para que la hoja sea reproducible.
func sortedCodes(summary dto.DemandSummary) []string {
	codes := make([]string, 0, len(summary))
	for code := range summary {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
