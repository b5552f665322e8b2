package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
)

func TestCheckBounds(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"0", true},
		{"12.5", true},
		{"-3.25", true},
		{"999999999999.9999", true},
		{"1.50000", true},
		{"1e12", false},
		{"-1e12", false},
		{"1e50000000", false},
		{"1e-50000000", false},
		{"0.00001", false},
		{"2.123456", false},
	}
	for _, tt := range tests {
		err := supply.CheckBounds("quantity", d(tt.in))
		if tt.ok {
			assert.NoError(t, err, tt.in)
			continue
		}
		assert.ErrorIs(t, err, domain.ErrInvalidInput, tt.in)
	}
}

func TestCheckTotal(t *testing.T) {
	assert.NoError(t, supply.CheckTotal("total_amount", d("99999999999999.99999999")))
	assert.ErrorIs(t, supply.CheckTotal("total_amount", d("1e14")), domain.ErrInvalidInput)
}

func TestReorderPoint_FueraDeRango(t *testing.T) {
	_, err := supply.ReorderPoint(d("1e20"), 5, d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = supply.ReorderPoint(d("1"), supply.MaxLeadTimeDays+1, d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExplodeBOM_UnidadesFueraDeRango(t *testing.T) {
	_, err := supply.ExplodeBOM(&entity.BillOfMaterial{}, d("1e50000000"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
