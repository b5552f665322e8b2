// seed_catalog genera un script SQL para poblar el catálogo de componentes y
// proveedores de una empresa a partir de un CSV exportado del ERP (ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog -company <id> [-out catalog.sql] [catalogo.csv]
//
// Columnas esperadas (separador ';'):
//
//	component_number;description;unit_price;unit_measure;supplier;supplier_country
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// supplierNamespace fija los IDs de proveedor para que el script sea re-ejecutable.
var supplierNamespace = uuid.MustParse("6f0c1c5e-8f55-4a52-9d3c-3e0b5f9d2a41")

type catalogRow struct {
	ComponentNumber string
	Description     string
	UnitPrice       decimal.Decimal
	UnitMeasure     string
	Supplier        string
	SupplierCountry string
}

func main() {
	companyID := flag.String("company", "", "ID de la empresa dueña del catálogo")
	outFlag := flag.String("out", "", "archivo SQL de salida (por defecto seeds/catalog.sql en la raíz del módulo)")
	flag.Parse()

	if *companyID == "" {
		fmt.Fprintln(os.Stderr, "-company es obligatorio")
		os.Exit(2)
	}
	csvPath := "catalogo.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	outPath := *outFlag
	if outPath == "" {
		outPath = filepath.Join(findModuleRoot(), "seeds", "catalog.sql")
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
			os.Exit(1)
		}
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	suppliers, components := writeCatalogSQL(out, *companyID, rows)
	fmt.Printf("Generado %s: %d proveedores, %d componentes\n", outPath, suppliers, components)
}

// readCatalog parsea el CSV ya decodificado a UTF-8. Omite la cabecera y las
// filas sin número de componente; un precio inválido corta la lectura.
func readCatalog(r io.Reader) ([]catalogRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []catalogRow
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "component_number") {
			continue
		}
		for len(rec) < 6 {
			rec = append(rec, "")
		}
		number := strings.TrimSpace(rec[0])
		if number == "" {
			continue
		}
		price := decimal.Zero
		if p := strings.TrimSpace(rec[2]); p != "" {
			// Los exportes usan coma decimal.
			price, err = decimal.NewFromString(strings.ReplaceAll(p, ",", "."))
			if err != nil {
				return nil, fmt.Errorf("línea %d: precio %q: %w", line, p, err)
			}
		}
		measure := strings.ToUpper(strings.TrimSpace(rec[3]))
		if measure == "" {
			measure = "EA"
		}
		rows = append(rows, catalogRow{
			ComponentNumber: number,
			Description:     strings.TrimSpace(rec[1]),
			UnitPrice:       price,
			UnitMeasure:     measure,
			Supplier:        strings.TrimSpace(rec[4]),
			SupplierCountry: strings.TrimSpace(rec[5]),
		})
	}
	return rows, nil
}

// writeCatalogSQL escribe proveedores primero y luego componentes. Devuelve
// cuántos de cada uno se emitieron.
func writeCatalogSQL(w io.Writer, companyID string, rows []catalogRow) (int, int) {
	supplierIDs := make(map[string]string)
	names := make(map[string]string)
	countries := make(map[string]string)
	for _, r := range rows {
		if r.Supplier == "" {
			continue
		}
		key := strings.ToLower(r.Supplier)
		if _, ok := supplierIDs[key]; ok {
			continue
		}
		supplierIDs[key] = uuid.NewSHA1(supplierNamespace, []byte(companyID+"|"+key)).String()
		names[key] = r.Supplier
		countries[key] = r.SupplierCountry
	}
	keys := make([]string, 0, len(supplierIDs))
	for k := range supplierIDs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(w, "-- Catálogo de componentes para la empresa %s\n\n", escapeSQL(companyID))

	if len(keys) > 0 {
		io.WriteString(w, "-- 1. Proveedores\n")
		io.WriteString(w, "INSERT INTO suppliers (id, company_id, name, country) VALUES\n")
		for i, k := range keys {
			sep := ","
			if i == len(keys)-1 {
				sep = ""
			}
			fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s')%s\n",
				supplierIDs[k], escapeSQL(companyID), escapeSQL(names[k]), escapeSQL(countries[k]), sep)
		}
		io.WriteString(w, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, country = EXCLUDED.country, updated_at = now();\n\n")
	}

	if len(rows) == 0 {
		return len(keys), 0
	}
	io.WriteString(w, "-- 2. Componentes\n")
	io.WriteString(w, "INSERT INTO components (id, company_id, component_number, description, unit_price, unit_measure, supplier_id) VALUES\n")
	for i, r := range rows {
		supplier := "NULL"
		if id, ok := supplierIDs[strings.ToLower(r.Supplier)]; ok {
			supplier = "'" + id + "'"
		}
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ('%s', '%s', '%s', '%s', %s, '%s', %s)%s\n",
			uuid.NewString(), escapeSQL(companyID), escapeSQL(r.ComponentNumber), escapeSQL(r.Description),
			r.UnitPrice.StringFixed(4), escapeSQL(r.UnitMeasure), supplier, sep)
	}
	io.WriteString(w, "ON CONFLICT (company_id, component_number) DO UPDATE SET\n")
	io.WriteString(w, "  description = EXCLUDED.description,\n")
	io.WriteString(w, "  unit_price = EXCLUDED.unit_price,\n")
	io.WriteString(w, "  unit_measure = EXCLUDED.unit_measure,\n")
	io.WriteString(w, "  supplier_id = EXCLUDED.supplier_id,\n")
	io.WriteString(w, "  updated_at = now();\n")
	return len(keys), len(rows)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
