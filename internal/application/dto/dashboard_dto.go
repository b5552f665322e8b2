package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Reúne los KPIs de cada módulo en una sola llamada.
type DashboardSummaryDTO struct {
	InventoryValue     decimal.Decimal `json:"inventory_value"`
	InventoryItems     int             `json:"inventory_items"`
	ItemsBelowReorder  int             `json:"items_below_reorder"`
	PurchaseOrders     StatsResponse   `json:"purchase_orders"`
	Shipments          StatsResponse   `json:"shipments"`
	RFQs               StatsResponse   `json:"rfqs"`
	BOMs               StatsResponse   `json:"boms"`
	WorkOrders         StatsResponse   `json:"work_orders"`
	OpenPurchaseAmount decimal.Decimal `json:"open_purchase_amount"` // órdenes no recibidas ni canceladas
}
