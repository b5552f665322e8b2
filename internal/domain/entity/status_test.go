package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

func TestPurchaseOrder_Transiciones(t *testing.T) {
	po := &entity.PurchaseOrder{Status: entity.POStatusDraft}
	assert.True(t, po.CanTransitionTo(entity.POStatusSubmitted))
	assert.True(t, po.CanTransitionTo(entity.POStatusCancelled))
	assert.False(t, po.CanTransitionTo(entity.POStatusReceived), "no se puede recibir un borrador")

	po.Status = entity.POStatusReceived
	assert.False(t, po.CanTransitionTo(entity.POStatusCancelled), "recibida es estado final")
}

func TestRFQ_Transiciones(t *testing.T) {
	rfq := &entity.RequestForQuotation{Status: entity.RFQStatusSent}
	assert.True(t, rfq.CanTransitionTo(entity.RFQStatusResponded))
	assert.False(t, rfq.CanTransitionTo(entity.RFQStatusAwarded))
}

func TestShipment_Transiciones(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{entity.ShipmentStatusPending, entity.ShipmentStatusInTransit, true},
		{entity.ShipmentStatusPending, entity.ShipmentStatusDelayed, true},
		{entity.ShipmentStatusPending, entity.ShipmentStatusDelivered, false},
		{entity.ShipmentStatusInTransit, entity.ShipmentStatusDelayed, true},
		{entity.ShipmentStatusInTransit, entity.ShipmentStatusDelivered, true},
		{entity.ShipmentStatusInTransit, entity.ShipmentStatusPending, false},
		{entity.ShipmentStatusDelayed, entity.ShipmentStatusInTransit, true},
		{entity.ShipmentStatusDelayed, entity.ShipmentStatusDelivered, true},
		{entity.ShipmentStatusDelivered, entity.ShipmentStatusInTransit, false},
		{entity.ShipmentStatusDelivered, entity.ShipmentStatusDelayed, false},
	}
	for _, tt := range tests {
		s := &entity.Shipment{Status: tt.from}
		assert.Equal(t, tt.ok, s.CanTransitionTo(tt.to), "%s → %s", tt.from, tt.to)
	}
}

func TestBOM_Transiciones(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{entity.BOMStatusDraft, entity.BOMStatusActive, true},
		{entity.BOMStatusDraft, entity.BOMStatusObsolete, false},
		{entity.BOMStatusActive, entity.BOMStatusObsolete, true},
		{entity.BOMStatusActive, entity.BOMStatusDraft, false},
		{entity.BOMStatusObsolete, entity.BOMStatusActive, false},
		{entity.BOMStatusObsolete, entity.BOMStatusDraft, false},
	}
	for _, tt := range tests {
		b := &entity.BillOfMaterial{Status: tt.from}
		assert.Equal(t, tt.ok, b.CanTransitionTo(tt.to), "%s → %s", tt.from, tt.to)
	}
}

func TestWorkOrder_Transiciones(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{entity.WOStatusPlanned, entity.WOStatusInProgress, true},
		{entity.WOStatusPlanned, entity.WOStatusCancelled, true},
		{entity.WOStatusPlanned, entity.WOStatusCompleted, false},
		{entity.WOStatusInProgress, entity.WOStatusCompleted, true},
		{entity.WOStatusInProgress, entity.WOStatusCancelled, true},
		{entity.WOStatusInProgress, entity.WOStatusPlanned, false},
		{entity.WOStatusCompleted, entity.WOStatusCancelled, false},
		{entity.WOStatusCancelled, entity.WOStatusPlanned, false},
	}
	for _, tt := range tests {
		wo := &entity.WorkOrder{Status: tt.from}
		assert.Equal(t, tt.ok, wo.CanTransitionTo(tt.to), "%s → %s", tt.from, tt.to)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, entity.IsValidPOStatus(entity.POStatusReceived))
	assert.True(t, entity.IsValidShipmentStatus(entity.ShipmentStatusDelayed))
	assert.True(t, entity.IsValidBOMStatus(entity.BOMStatusObsolete))
	assert.True(t, entity.IsValidWOStatus(entity.WOStatusCancelled))
	assert.True(t, entity.IsValidRFQStatus(entity.RFQStatusAwarded))
	assert.False(t, entity.IsValidPOStatus("shipping"))
}

func TestPurchaseOrder_ComputeTotal(t *testing.T) {
	po := &entity.PurchaseOrder{Items: []entity.PurchaseOrderItem{
		{Quantity: decimalFrom("3"), UnitPrice: decimalFrom("2.5")},
		{Quantity: decimalFrom("1"), UnitPrice: decimalFrom("10")},
	}}
	po.ComputeTotal()
	assert.Equal(t, "17.5", po.TotalAmount.String())
}
