// Package pdf implementa la generación del Acta de Traslado imprimible:
// el documento que acompaña la carga entre bodegas y que firman el bodeguero
// de origen, el conductor y el bodeguero de destino.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: ACTA DE TRASLADO  │  N° Traslado + Estado + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORIGEN: Bodega + dirección                                 │
//	│  DESTINO: Bodega + dirección                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Unidad | Planeada | Despachada | Recibida│
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRECINTO + FECHA LÍMITE                                    │
//	│  FIRMAS: bodeguero origen / conductor / bodeguero destino   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/Traslados-api/internal/application/waybill"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ waybill.Generator = (*MarotoWaybillGenerator)(nil)

// MarotoWaybillGenerator implementa waybill.Generator usando Maroto v2.
type MarotoWaybillGenerator struct{}

// NewMarotoWaybillGenerator construye el generador.
func NewMarotoWaybillGenerator() *MarotoWaybillGenerator { return &MarotoWaybillGenerator{} }

// GenerateWaybillPDF genera el acta y devuelve sus bytes.
func (g *MarotoWaybillGenerator) GenerateWaybillPDF(
	_ context.Context,
	transfer *entity.Transfer,
	from, to *entity.Warehouse,
	material *entity.Material,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Traslado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(transfer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(warehouseRow("BODEGA DE ORIGEN", from))
	m.AddRows(warehouseRow("BODEGA DE DESTINO", to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(materialRow(transfer, material))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sealRow(transfer))

	m.AddRows(line.NewRow(6))
	m.AddRows(signaturesRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y N° de traslado + estado + fecha (der).
func headerRow(transfer *entity.Transfer) core.Row {
	fecha := transfer.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("ACTA DE TRASLADO DE MATERIAL", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Documento de acompañamiento de carga entre bodegas", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TRASLADO N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(transfer.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
			text.New("Estado: "+transfer.Status+"   |   Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// warehouseRow: datos de una bodega (origen o destino).
func warehouseRow(label string, w *entity.Warehouse) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Dirección: %s",
				w.Name, nonEmpty(w.Address, "—"),
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cantidades.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 4, align.Left),
		h("Unidad", 2, align.Center),
		h("Planeada", 2, align.Right),
		h("Despachada", 2, align.Right),
		h("Recibida", 2, align.Right),
	)
}

// materialRow: la línea única del traslado (un material por traslado).
func materialRow(transfer *entity.Transfer, material *entity.Material) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 9, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		cell(material.Name, 4, align.Left),
		cell(material.Unit, 2, align.Center),
		cell(transfer.PlannedQty.String(), 2, align.Right),
		cell(transfer.ShippedQty.String(), 2, align.Right),
		cell(transfer.ReceivedQty.String(), 2, align.Right),
	)
}

// sealRow: precinto y fecha límite de entrega.
func sealRow(transfer *entity.Transfer) core.Row {
	seal := "—"
	if transfer.SealNumber != nil && *transfer.SealNumber != "" {
		seal = *transfer.SealNumber
	}
	deadline := "—"
	if transfer.DeadlineAt != nil {
		deadline = transfer.DeadlineAt.Format("02/01/2006 15:04")
	}
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Precinto de seguridad: %s   |   Fecha límite de entrega: %s",
				seal, deadline,
			), props.Text{Size: 9, Top: 2}),
		),
	)
}

// signaturesRow: tres espacios de firma.
func signaturesRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(4).Add(
			text.New("______________________", props.Text{
				Size: 9, Align: align.Center, Top: 1,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 7, Color: colorGray,
			}),
		)
	}
	return row.New(14).Add(
		sig("Bodeguero de origen"),
		sig("Conductor"),
		sig("Bodeguero de destino"),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
