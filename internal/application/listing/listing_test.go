package listing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/listing"
)

type row struct {
	Code   string
	Status string
	Amount decimal.Decimal
}

func rows() []row {
	return []row{
		{Code: "RFQ-3", Status: "sent", Amount: decimal.NewFromInt(30)},
		{Code: "RFQ-1", Status: "draft", Amount: decimal.NewFromInt(10)},
		{Code: "RFQ-4", Status: "sent", Amount: decimal.NewFromInt(10)},
		{Code: "RFQ-2", Status: "closed", Amount: decimal.NewFromInt(20)},
	}
}

func codes(rs []row) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Code)
	}
	return out
}

var sorters = map[string]listing.Comparator[row]{
	"code":   listing.ByString(func(r row) string { return r.Code }),
	"amount": listing.ByDecimal(func(r row) decimal.Decimal { return r.Amount }),
}

func TestSort_AscYDesc(t *testing.T) {
	asc := listing.Sort(rows(), "code", listing.Asc, sorters)
	assert.Equal(t, []string{"RFQ-1", "RFQ-2", "RFQ-3", "RFQ-4"}, codes(asc))

	desc := listing.Sort(rows(), "code", listing.Desc, sorters)
	assert.Equal(t, []string{"RFQ-4", "RFQ-3", "RFQ-2", "RFQ-1"}, codes(desc))
}

func TestSort_IdempotenteConMismoOrden(t *testing.T) {
	once := listing.Sort(rows(), "amount", listing.Desc, sorters)
	twice := listing.Sort(once, "amount", listing.Desc, sorters)
	assert.Equal(t, codes(once), codes(twice))
}

func TestSort_EstableEnEmpates(t *testing.T) {
	// RFQ-1 y RFQ-4 tienen el mismo monto: deben conservar el orden de entrada.
	asc := listing.Sort(rows(), "amount", listing.Asc, sorters)
	assert.Equal(t, []string{"RFQ-1", "RFQ-4", "RFQ-2", "RFQ-3"}, codes(asc))

	desc := listing.Sort(rows(), "amount", listing.Desc, sorters)
	assert.Equal(t, []string{"RFQ-3", "RFQ-2", "RFQ-1", "RFQ-4"}, codes(desc))
}

func TestSort_CampoDesconocidoConservaOrden(t *testing.T) {
	out := listing.Sort(rows(), "nope", listing.Asc, sorters)
	assert.Equal(t, codes(rows()), codes(out))
}

func TestSort_NoModificaEntrada(t *testing.T) {
	in := rows()
	_ = listing.Sort(in, "code", listing.Asc, sorters)
	assert.Equal(t, codes(rows()), codes(in))
}

func TestToggle(t *testing.T) {
	s := listing.Toggle(listing.SortState{}, "code")
	assert.Equal(t, listing.SortState{Field: "code", Order: listing.Asc}, s)

	s = listing.Toggle(s, "code")
	assert.Equal(t, listing.Desc, s.Order)

	s = listing.Toggle(s, "code")
	assert.Equal(t, listing.Asc, s.Order)

	s = listing.Toggle(listing.SortState{Field: "code", Order: listing.Desc}, "amount")
	assert.Equal(t, listing.SortState{Field: "amount", Order: listing.Asc}, s)
}

func TestFilterByStatus_ConservaOrdenRelativo(t *testing.T) {
	out := listing.FilterByStatus(rows(), "sent", func(r row) string { return r.Status })
	assert.Equal(t, []string{"RFQ-3", "RFQ-4"}, codes(out))

	for _, r := range out {
		assert.Equal(t, "sent", r.Status)
	}
}

func TestFilterByStatus_VacioDevuelveTodo(t *testing.T) {
	out := listing.FilterByStatus(rows(), "", func(r row) string { return r.Status })
	assert.Len(t, out, 4)
}

func TestSearch_SinDistinguirMayusculas(t *testing.T) {
	out := listing.Search(rows(), "rfq-2", func(r row) []string { return []string{r.Code} })
	assert.Equal(t, []string{"RFQ-2"}, codes(out))
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, []string{"RFQ-1", "RFQ-4"}, codes(listing.Paginate(rows(), 2, 1)))
	assert.Empty(t, listing.Paginate(rows(), 2, 10))
	assert.Len(t, listing.Paginate(rows(), 10, 0), 4)
}

func TestApply(t *testing.T) {
	spec := listing.Spec[row]{
		Status:  func(r row) string { return r.Status },
		Text:    func(r row) []string { return []string{r.Code} },
		Sorters: sorters,
	}
	page, total := listing.Apply(rows(), listing.Query{Status: "sent", SortField: "code", SortOrder: "DESC", Limit: 1}, spec)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "RFQ-4", page[0].Code)
}

func TestQueryNormalize(t *testing.T) {
	q := listing.Query{Limit: 500, Offset: -3, SortOrder: "sideways"}
	q.Normalize()
	assert.Equal(t, listing.MaxLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, listing.Asc, q.SortOrder)
}

func TestCountByYSumDecimal(t *testing.T) {
	counts := listing.CountBy(rows(), func(r row) string { return r.Status })
	assert.Equal(t, map[string]int{"sent": 2, "draft": 1, "closed": 1}, counts)

	sum := listing.SumDecimal(rows(), func(r row) decimal.Decimal { return r.Amount })
	assert.True(t, sum.Equal(decimal.NewFromInt(70)))
}
