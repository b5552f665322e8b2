package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/application/usecase"
	"github.com/jhoicas/supplychain-api/internal/domain"
)

func TestComponent_CRUD(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := usecase.NewComponentUseCase(e.components, e.suppliers)

	c, err := uc.Create(ctx, companyID, dto.CreateComponentRequest{ComponentNumber: "C", Description: "Inductor", UnitPrice: d("1.25"), SupplierID: e.supplierID})
	require.NoError(t, err)
	assert.Equal(t, "EA", c.UnitMeasure)
	assert.Equal(t, "Northwind", c.SupplierName)

	_, err = uc.Create(ctx, companyID, dto.CreateComponentRequest{ComponentNumber: "C"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.Create(ctx, companyID, dto.CreateComponentRequest{ComponentNumber: "D", UnitPrice: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	price := d("3")
	none := ""
	got, err := uc.Update(ctx, companyID, c.ID, dto.UpdateComponentRequest{UnitPrice: &price, SupplierID: &none})
	require.NoError(t, err)
	assert.True(t, got.UnitPrice.Equal(price))
	assert.Equal(t, dto.NotAvailable, got.SupplierName)

	list, err := uc.List(ctx, companyID, listing.Query{Search: "induc"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	_, err = uc.GetByID(ctx, "otra", c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, companyID, c.ID))
	_, err = uc.GetByID(ctx, companyID, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierYCompany(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	suppliers := usecase.NewSupplierUseCase(e.suppliers)
	s, err := suppliers.Create(ctx, companyID, dto.CreateSupplierRequest{Name: "Acme Parts", Country: "CO"})
	require.NoError(t, err)
	list, err := suppliers.List(ctx, companyID, listing.Query{SortField: "name"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, s.ID, list.Items[0].ID)

	companies := usecase.NewCompanyUseCase(e.companies)
	_, err = companies.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", TaxID: "900"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	c, err := companies.Create(ctx, dto.CreateCompanyRequest{Name: "Otra", TaxID: "901"})
	require.NoError(t, err)
	got, err := companies.GetByID(ctx, c.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Otra", got.Name)
	_, err = companies.GetByID(ctx, companyID, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
