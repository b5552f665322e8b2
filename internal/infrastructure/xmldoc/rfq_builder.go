// Package xmldoc arma el documento XML de una solicitud de cotización (RFQ) para el proveedor.
// El XML se entrega canonicalizado (C14N 1.0) junto con su huella SHA-256,
// de modo que proveedor y comprador pueden verificar que hablan del mismo documento.
package xmldoc

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/supplychain-api/internal/application/ports"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

const (
	// Namespace espacio de nombres del documento.
	Namespace = "urn:supplychain:rfq:1"

	dateLayout = "2006-01-02"
	notAvail   = "N/A"
)

var _ ports.RFQDocumentBuilder = (*RFQBuilder)(nil)

// RFQBuilder implementa ports.RFQDocumentBuilder con etree.
type RFQBuilder struct{}

// NewRFQBuilder construye el generador.
func NewRFQBuilder() *RFQBuilder { return &RFQBuilder{} }

// BuildRFQDocument genera el XML canónico de la RFQ y su digest hex SHA-256.
// supplier puede ser nil; descriptions mapea número de componente → descripción.
func (b *RFQBuilder) BuildRFQDocument(
	_ context.Context,
	rfq *entity.RequestForQuotation,
	company *entity.Company,
	supplier *entity.Supplier,
	descriptions map[string]string,
) (*ports.RFQDocument, error) {
	if rfq == nil || company == nil {
		return nil, fmt.Errorf("xml: rfq y empresa son requeridas")
	}
	doc := etree.NewDocument()
	root := doc.CreateElement("RequestForQuotation")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", rfq.RFQNumber)

	header := root.CreateElement("Header")
	header.CreateElement("RFQNumber").SetText(rfq.RFQNumber)
	header.CreateElement("Title").SetText(rfq.Title)
	header.CreateElement("Status").SetText(rfq.Status)
	header.CreateElement("IssueDate").SetText(rfq.IssueDate.UTC().Format(dateLayout))
	if rfq.DueDate != nil {
		header.CreateElement("DueDate").SetText(rfq.DueDate.UTC().Format(dateLayout))
	}

	buyer := root.CreateElement("Buyer")
	buyer.CreateElement("Name").SetText(company.Name)
	buyer.CreateElement("TaxID").SetText(company.TaxID)
	if company.Email != "" {
		buyer.CreateElement("Email").SetText(company.Email)
	}

	party := root.CreateElement("Supplier")
	party.CreateAttr("id", rfq.SupplierID)
	if supplier != nil {
		party.CreateElement("Name").SetText(supplier.Name)
		if supplier.ContactEmail != "" {
			party.CreateElement("Email").SetText(supplier.ContactEmail)
		}
		if supplier.Country != "" {
			party.CreateElement("Country").SetText(supplier.Country)
		}
	} else {
		party.CreateElement("Name").SetText(notAvail)
	}

	lines := root.CreateElement("Lines")
	target := decimal.Zero
	for i, it := range rfq.Items {
		line := lines.CreateElement("Line")
		line.CreateAttr("no", strconv.Itoa(i+1))
		line.CreateElement("ComponentNumber").SetText(it.ComponentNumber)
		desc, ok := descriptions[it.ComponentNumber]
		if !ok {
			desc = notAvail
		}
		line.CreateElement("Description").SetText(desc)
		line.CreateElement("Quantity").SetText(it.Quantity.String())
		line.CreateElement("TargetPrice").SetText(it.TargetPrice.StringFixed(2))
		target = target.Add(it.Quantity.Mul(it.TargetPrice))
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("TargetTotal").SetText(target.StringFixed(2))
	if rfq.QuotedAmount != nil {
		totals.CreateElement("QuotedAmount").SetText(rfq.QuotedAmount.StringFixed(2))
	}

	var raw bytes.Buffer
	if _, err := doc.WriteTo(&raw); err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	canonical, err := canonicalize(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)

	out := make([]byte, 0, len(xml.Header)+len(canonical))
	out = append(out, xml.Header...)
	out = append(out, canonical...)
	return &ports.RFQDocument{XML: out, Digest: hex.EncodeToString(sum[:])}, nil
}

// Digest recalcula la huella de un documento ya emitido (con o sin declaración XML).
func Digest(doc []byte) (string, error) {
	doc = bytes.TrimSpace(doc)
	if bytes.HasPrefix(doc, []byte("<?xml")) {
		end := bytes.Index(doc, []byte("?>"))
		if end < 0 {
			return "", fmt.Errorf("xml: declaración sin cerrar")
		}
		doc = doc[end+2:]
	}
	canonical, err := canonicalize(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
