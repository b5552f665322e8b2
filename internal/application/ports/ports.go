// Package ports define los contratos que la capa de aplicación espera de la
// infraestructura (caché, documentos, cola de tareas).
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// Cache almacenamiento clave/valor con expiración. Los valores viajan como JSON.
// Get devuelve (false, nil) cuando la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// PurchaseOrderLine línea de la orden enriquecida con la descripción del catálogo.
type PurchaseOrderLine struct {
	entity.PurchaseOrderItem
	Description string
	LineTotal   decimal.Decimal
}

// PurchaseOrderPDFGenerator genera la representación imprimible de una orden de compra.
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		po *entity.PurchaseOrder,
		company *entity.Company,
		supplier *entity.Supplier,
		lines []PurchaseOrderLine,
	) ([]byte, error)
}

// RFQDocument documento XML de la RFQ y el digest de su forma canónica.
type RFQDocument struct {
	XML    []byte
	Digest string // SHA-256 hex del XML canonicalizado
}

// RFQDocumentBuilder construye el documento que se envía al proveedor.
type RFQDocumentBuilder interface {
	BuildRFQDocument(
		ctx context.Context,
		rfq *entity.RequestForQuotation,
		company *entity.Company,
		supplier *entity.Supplier,
		descriptions map[string]string,
	) (*RFQDocument, error)
}

// TaskEnqueuer encola trabajos en segundo plano.
type TaskEnqueuer interface {
	EnqueueReorderScan(ctx context.Context, companyID string) (taskID string, err error)
}
