package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supplychain-api/internal/application/dto"
	"github.com/jhoicas/supplychain-api/internal/application/listing"
	"github.com/jhoicas/supplychain-api/internal/domain"
	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

func createRFQ(t *testing.T, e *env, title string) *dto.RFQResponse {
	t.Helper()
	rfq, err := e.rfqUseCase().Create(context.Background(), companyID, dto.CreateRFQRequest{
		Title:      title,
		SupplierID: e.supplierID,
		Items:      []dto.RFQItemRequest{{ComponentNumber: "A", Quantity: d("100"), TargetPrice: d("1.9")}},
	})
	require.NoError(t, err)
	return rfq
}

func TestRFQ_QuoteFlujo(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := e.rfqUseCase()
	rfq := createRFQ(t, e, "Resistores")
	assert.Regexp(t, `^RFQ-`, rfq.RFQNumber)
	assert.Nil(t, rfq.QuotedAmount)

	_, err := uc.Quote(ctx, companyID, rfq.ID, d("180"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un borrador no recibe cotización")

	_, err = uc.UpdateStatus(ctx, companyID, rfq.ID, entity.RFQStatusSent)
	require.NoError(t, err)
	_, err = uc.Quote(ctx, companyID, rfq.ID, d("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.Quote(ctx, companyID, rfq.ID, d("180"))
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusResponded, got.Status)
	require.NotNil(t, got.QuotedAmount)
	assert.True(t, got.QuotedAmount.Equal(d("180")))

	got, err = uc.UpdateStatus(ctx, companyID, rfq.ID, entity.RFQStatusAwarded)
	require.NoError(t, err)
	assert.Equal(t, entity.RFQStatusAwarded, got.Status)
}

func TestRFQ_RespondedRequiereCotizacion(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	rfq := createRFQ(t, e, "Resistores")
	_, err := e.rfqUseCase().UpdateStatus(ctx, companyID, rfq.ID, entity.RFQStatusSent)
	require.NoError(t, err)

	_, err = e.rfqUseCase().UpdateStatus(ctx, companyID, rfq.ID, entity.RFQStatusResponded)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRFQ_StatsYListado(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := e.rfqUseCase()
	r1 := createRFQ(t, e, "Zeta")
	createRFQ(t, e, "Alfa")
	_, err := uc.UpdateStatus(ctx, companyID, r1.ID, entity.RFQStatusSent)
	require.NoError(t, err)
	_, err = uc.Quote(ctx, companyID, r1.ID, d("99.5"))
	require.NoError(t, err)

	stats, err := uc.Stats(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[entity.RFQStatusResponded])
	assert.True(t, stats.TotalAmount.Equal(d("99.5")))

	res, err := uc.List(ctx, companyID, listing.Query{SortField: "title"})
	require.NoError(t, err)
	assert.Equal(t, "Alfa", res.Items[0].Title)
}

func TestRFQ_Document(t *testing.T) {
	e := newEnv(t)
	rfq := createRFQ(t, e, "Resistores")

	doc, name, err := e.rfqUseCase().Document(context.Background(), companyID, rfq.ID)
	require.NoError(t, err)
	assert.Equal(t, "rfq_"+rfq.RFQNumber+".xml", name)
	assert.Equal(t, "abc", doc.Digest)
	assert.Equal(t, "Northwind", e.rfqDoc.supplier.Name)
}

func TestShipment_CicloDeVida(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	po := createPO(t, e, "PO-9")
	uc := newShipmentUseCase(e)

	_, err := uc.Create(ctx, companyID, dto.CreateShipmentRequest{PurchaseOrderID: "missing", Carrier: "DHL"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	sh, err := uc.Create(ctx, companyID, dto.CreateShipmentRequest{PurchaseOrderID: po.ID, Carrier: "DHL", TrackingNumber: "T-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusPending, sh.Status)
	assert.Equal(t, "PO-9", sh.PONumber)

	got, err := uc.UpdateStatus(ctx, companyID, sh.ID, entity.ShipmentStatusDelayed)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusDelayed, got.Status)
	got, err = uc.UpdateStatus(ctx, companyID, sh.ID, entity.ShipmentStatusDelivered)
	require.NoError(t, err)
	assert.NotNil(t, got.DeliveredAt)
	assert.NotNil(t, got.ShippedAt)
	_, err = uc.UpdateStatus(ctx, companyID, sh.ID, entity.ShipmentStatusInTransit)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	stats, err := uc.Stats(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ByStatus[entity.ShipmentStatusDelivered])
	assert.True(t, stats.TotalAmount.Equal(d("36.5")))
}
