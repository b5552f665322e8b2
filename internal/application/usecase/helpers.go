package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/repository"
	"github.com/jhoicas/supplychain-api/internal/domain/supply"
)

// checkBounds valida cantidad y precio de una línea de documento.
func checkBounds(quantity, price decimal.Decimal) error {
	if err := supply.CheckBounds("quantity", quantity); err != nil {
		return err
	}
	return supply.CheckBounds("unit_price", price)
}

// documentNumber genera un número legible para documentos sin número explícito: PO-20240131-3F9A1C.
func documentNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(uuid.NewString()[:6]))
}

// buildStats conteo por estado y suma del campo monetario.
func buildStats[T any](items []T, statusOf func(T) string, amountOf func(T) decimal.Decimal) *dto.StatsResponse {
	return &dto.StatsResponse{
		Total:       len(items),
		ByStatus:    listing.CountBy(items, statusOf),
		TotalAmount: listing.SumDecimal(items, amountOf),
	}
}

// supplierNames índice id → nombre de los proveedores de la empresa.
func supplierNames(ctx context.Context, repo repository.SupplierRepository, companyID string) (map[string]string, error) {
	list, err := repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		out[s.ID] = s.Name
	}
	return out, nil
}

// componentDescriptions índice número de componente → descripción.
func componentDescriptions(ctx context.Context, repo repository.ComponentRepository, companyID string) (map[string]string, error) {
	list, err := repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("listar componentes: %w", err)
	}
	out := make(map[string]string, len(list))
	for _, c := range list {
		out[c.ComponentNumber] = c.Description
	}
	return out, nil
}

// lookup devuelve "N/A" cuando la referencia no existe.
func lookup(index map[string]string, key string) string {
	if v, ok := index[key]; ok {
		return v
	}
	return dto.NotAvailable
}

// checkTransition valida el estado destino contra el ciclo de vida de la entidad.
func checkTransition(current, next string, known func(string) bool, allowed bool) error {
	if !known(next) {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, next)
	}
	if !allowed {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, current, next)
	}
	return nil
}

func optionalTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := *t
	return &v
}
