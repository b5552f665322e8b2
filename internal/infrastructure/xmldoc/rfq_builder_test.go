package xmldoc

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

func sampleRFQ() *entity.RequestForQuotation {
	due := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	return &entity.RequestForQuotation{
		RFQNumber:  "RFQ-3001",
		Title:      "Resistores & capacitores <SMD>",
		SupplierID: "s1",
		Status:     entity.RFQStatusSent,
		IssueDate:  time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		DueDate:    &due,
		Items: []entity.RFQItem{
			{ComponentNumber: "A", Quantity: decimal.NewFromInt(100), TargetPrice: decimal.RequireFromString("1.9")},
			{ComponentNumber: "Z", Quantity: decimal.NewFromInt(5), TargetPrice: decimal.NewFromInt(4)},
		},
	}
}

func build(t *testing.T, rfq *entity.RequestForQuotation, supplier *entity.Supplier) (string, *etree.Document) {
	t.Helper()
	company := &entity.Company{Name: "Acme", TaxID: "900"}
	res, err := NewRFQBuilder().BuildRFQDocument(context.Background(), rfq, company, supplier, map[string]string{"A": "Resistor"})
	require.NoError(t, err)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(res.XML))

	again, err := Digest(res.XML)
	require.NoError(t, err)
	assert.Equal(t, res.Digest, again, "el digest se puede verificar sobre el documento emitido")
	return res.Digest, doc
}

func TestBuildRFQDocument_Contenido(t *testing.T) {
	_, doc := build(t, sampleRFQ(), &entity.Supplier{Name: "Northwind", Country: "CO"})
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "RequestForQuotation", root.Tag)
	assert.Equal(t, "RFQ-3001", root.SelectAttrValue("id", ""))
	assert.Equal(t, "Resistores & capacitores <SMD>", root.FindElement("Header/Title").Text())
	assert.Equal(t, "2026-04-30", root.FindElement("Header/DueDate").Text())
	assert.Equal(t, "Northwind", root.FindElement("Supplier/Name").Text())

	lines := root.FindElements("Lines/Line")
	require.Len(t, lines, 2)
	assert.Equal(t, "Resistor", lines[0].FindElement("Description").Text())
	assert.Equal(t, "N/A", lines[1].FindElement("Description").Text())
	assert.Equal(t, "210.00", root.FindElement("Totals/TargetTotal").Text())
	assert.Nil(t, root.FindElement("Totals/QuotedAmount"))
}

func TestBuildRFQDocument_DigestDeterministico(t *testing.T) {
	supplier := &entity.Supplier{Name: "Northwind"}
	d1, _ := build(t, sampleRFQ(), supplier)
	d2, _ := build(t, sampleRFQ(), supplier)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	quoted := sampleRFQ()
	amount := decimal.NewFromInt(180)
	quoted.QuotedAmount = &amount
	d3, doc := build(t, quoted, supplier)
	assert.NotEqual(t, d1, d3)
	assert.Equal(t, "180.00", doc.Root().FindElement("Totals/QuotedAmount").Text())
}

func TestBuildRFQDocument_ProveedorDesconocido(t *testing.T) {
	_, doc := build(t, sampleRFQ(), nil)
	assert.Equal(t, "N/A", doc.Root().FindElement("Supplier/Name").Text())

	_, err := NewRFQBuilder().BuildRFQDocument(context.Background(), nil, nil, nil, nil)
	assert.Error(t, err)
}
