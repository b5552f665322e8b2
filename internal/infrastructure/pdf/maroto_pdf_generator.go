// Package pdf genera la orden de compra imprimible que se envía al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + identificación │ N° Orden + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre / contacto / país                        │
//	│  CONDICIONES: Estado / Moneda / Entrega esperada            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Componente | Descripción | P.Unit | Total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA ORDEN                                           │
//	│  FOOTER: QR con número y total + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.PurchaseOrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.PurchaseOrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GeneratePurchaseOrderPDF genera el PDF y devuelve sus bytes.
// supplier puede ser nil (proveedor desconocido): se imprime "N/A".
func (g *MarotoPDFGenerator) GeneratePurchaseOrderPDF(
	_ context.Context,
	po *entity.PurchaseOrder,
	company *entity.Company,
	supplier *entity.Supplier,
	lines []ports.PurchaseOrderLine,
) ([]byte, error) {
	if po == nil || company == nil {
		return nil, fmt.Errorf("pdf: orden y empresa son requeridas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de compra "+po.PONumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(termsRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(lines, po.Currency)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(po))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(po, company)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y N° de orden + fecha (der).
func headerRow(po *entity.PurchaseOrder, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID tributario: "+nonEmpty(company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(po.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+po.OrderDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func supplierRow(supplier *entity.Supplier) core.Row {
	name, contact := "N/A", "—"
	if supplier != nil {
		name = supplier.Name
		contact = fmt.Sprintf("Email: %s   |   Tel: %s   |   País: %s",
			nonEmpty(supplier.ContactEmail, "—"),
			nonEmpty(supplier.Phone, "—"),
			nonEmpty(supplier.Country, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func termsRow(po *entity.PurchaseOrder) core.Row {
	expected := "—"
	if po.ExpectedDate != nil {
		expected = po.ExpectedDate.Format("02/01/2006")
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Estado: %s   |   Moneda: %s   |   Entrega esperada: %s",
				strings.ToUpper(po.Status), po.Currency, expected,
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Componente", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por ítem de la orden.
func tableDetailRows(lines []ports.PurchaseOrderLine, currency string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				l.ComponentNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				l.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				money(l.UnitPrice, currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				money(l.LineTotal, currency),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(po *entity.PurchaseOrder) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DE LA ORDEN:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(money(po.TotalAmount, po.Currency), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: QR con los datos de control de la orden y leyenda.
func footerRows(po *entity.PurchaseOrder, company *entity.Company) []core.Row {
	qr := fmt.Sprintf("PO=%s;TAX_ID=%s;TOTAL=%s;CUR=%s", po.PONumber, company.TaxID, po.TotalAmount.StringFixed(2), po.Currency)
	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Favor confirmar recepción de esta orden y fecha de despacho.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Indique el número "+po.PONumber+" en facturas y guías de envío.", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func money(d decimal.Decimal, currency string) string {
	return currency + " " + formatMoney(d.StringFixed(2))
}

// formatMoney inserta puntos de miles y coma decimal en un número con dos decimales.
// Ej: "25000.50" → "25.000,50", "-1234.00" → "-1.234,00"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	if frac != "" {
		return sign + string(buf) + "," + frac
	}
	return sign + string(buf)
}
