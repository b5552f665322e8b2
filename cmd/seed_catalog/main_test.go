package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestReadCatalog_Latin1(t *testing.T) {
	raw := "component_number;description;unit_price;unit_measure;supplier;supplier_country\n" +
		"CMP-1;Tornillo de cabeza hexagonal;0,25;ea;Ferretería Núñez;CO\n" +
		";sin número;1;EA;;\n" +
		"CMP-2;Arandela;;;;\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	rows, err := readCatalog(transform.NewReader(strings.NewReader(encoded), charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "CMP-1", rows[0].ComponentNumber)
	assert.Equal(t, "0.25", rows[0].UnitPrice.String())
	assert.Equal(t, "EA", rows[0].UnitMeasure)
	assert.Equal(t, "Ferretería Núñez", rows[0].Supplier)
	assert.True(t, rows[1].UnitPrice.IsZero())
	assert.Equal(t, "EA", rows[1].UnitMeasure)
}

func TestReadCatalog_InvalidPrice(t *testing.T) {
	_, err := readCatalog(strings.NewReader("CMP-1;x;abc;EA;;\n"))
	assert.Error(t, err)
}

func TestWriteCatalogSQL(t *testing.T) {
	rows, err := readCatalog(strings.NewReader("CMP-1;O'Ring;1.5;EA;Acme;US\nCMP-2;Eje;2;EA;acme;US\nCMP-3;Perno;3;EA;;\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	suppliers, components := writeCatalogSQL(&buf, "company-1", rows)
	assert.Equal(t, 1, suppliers)
	assert.Equal(t, 3, components)

	out := buf.String()
	assert.Contains(t, out, "'O''Ring'")
	assert.Contains(t, out, "1.5000")
	assert.Contains(t, out, "ON CONFLICT (company_id, component_number)")
	assert.Contains(t, out, "NULL)")

	// IDs de proveedor deterministas entre ejecuciones.
	var again bytes.Buffer
	writeCatalogSQL(&again, "company-1", rows)
	first := out[:strings.Index(out, "-- 2.")]
	second := again.String()[:strings.Index(again.String(), "-- 2.")]
	assert.Equal(t, first, second)
}
