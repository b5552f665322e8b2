package supply

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/domain"
)

// Límites de cantidades y montos recibidos por la API. Las columnas son NUMERIC(18, 4).
const (
	MaxIntegerDigits = 12
	MaxScale         = 4
	MaxLeadTimeDays  = 3650
)

var maxMagnitude = decimal.New(1, MaxIntegerDigits)

// CheckBounds rechaza valores con más de MaxIntegerDigits dígitos enteros o más de
// MaxScale decimales significativos. El exponente se revisa antes de comparar para
// no escalar coeficientes enormes (ej. 1e50000000).
func CheckBounds(field string, v decimal.Decimal) error {
	exp := v.Exponent()
	if exp > MaxIntegerDigits || exp < -(MaxIntegerDigits+MaxScale) {
		return fmt.Errorf("%w: %s fuera de rango", domain.ErrInvalidInput, field)
	}
	if v.Abs().Cmp(maxMagnitude) >= 0 {
		return fmt.Errorf("%w: %s fuera de rango", domain.ErrInvalidInput, field)
	}
	if !v.Equal(v.Truncate(MaxScale)) {
		return fmt.Errorf("%w: %s admite hasta %d decimales", domain.ErrInvalidInput, field, MaxScale)
	}
	return nil
}

var maxTotal = decimal.New(1, 18-MaxScale)

// CheckTotal rechaza montos calculados que no caben en NUMERIC(18, 4).
func CheckTotal(field string, v decimal.Decimal) error {
	if v.Abs().Cmp(maxTotal) >= 0 {
		return fmt.Errorf("%w: %s fuera de rango", domain.ErrInvalidInput, field)
	}
	return nil
}
