// Package memory implementa los repositorios de dominio en memoria.
// Se usa con STORAGE=memory (demo sin PostgreSQL) y como dobles en los tests.
package memory

import (
	"slices"
	"sync"

	"github.com/jhoicas/supplychain-api/internal/domain/entity"
)

// table filas indexadas por ID que conservan el orden de inserción.
// Las filas se clonan al entrar y al salir para que los llamadores no muten el estado compartido.
type table[T any] struct {
	rows  map[string]*T
	ids   []string
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: make(map[string]*T), clone: clone}
}

func (t *table[T]) get(id string) *T {
	if v, ok := t.rows[id]; ok {
		return t.clone(v)
	}
	return nil
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) put(id string, v *T) {
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = t.clone(v)
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	t.ids = slices.DeleteFunc(t.ids, func(s string) bool { return s == id })
	return true
}

// find devuelve las filas que cumplen match, en orden de inserción.
func (t *table[T]) find(match func(*T) bool) []*T {
	out := make([]*T, 0)
	for _, id := range t.ids {
		if v := t.rows[id]; match(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[T]) first(match func(*T) bool) *T {
	for _, id := range t.ids {
		if v := t.rows[id]; match(v) {
			return t.clone(v)
		}
	}
	return nil
}

type tableSnapshot[T any] struct {
	rows map[string]*T
	ids  []string
}

func (t *table[T]) snapshot() tableSnapshot[T] {
	rows := make(map[string]*T, len(t.rows))
	for id, v := range t.rows {
		rows[id] = t.clone(v)
	}
	return tableSnapshot[T]{rows: rows, ids: slices.Clone(t.ids)}
}

func (t *table[T]) restore(s tableSnapshot[T]) {
	t.rows = s.rows
	t.ids = s.ids
}

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	companies      *table[entity.Company]
	users          *table[entity.User]
	suppliers      *table[entity.Supplier]
	components     *table[entity.Component]
	inventory      *table[entity.WarehouseInventory]
	purchaseOrders *table[entity.PurchaseOrder]
	shipments      *table[entity.Shipment]
	boms           *table[entity.BillOfMaterial]
	workOrders     *table[entity.WorkOrder]
	rfqs           *table[entity.RequestForQuotation]
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		companies:      newTable(shallow[entity.Company]),
		users:          newTable(shallow[entity.User]),
		suppliers:      newTable(shallow[entity.Supplier]),
		components:     newTable(shallow[entity.Component]),
		inventory:      newTable(shallow[entity.WarehouseInventory]),
		purchaseOrders: newTable(clonePurchaseOrder),
		shipments:      newTable(cloneShipment),
		boms:           newTable(cloneBOM),
		workOrders:     newTable(cloneWorkOrder),
		rfqs:           newTable(cloneRFQ),
	}
}

func shallow[T any](v *T) *T {
	c := *v
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func clonePurchaseOrder(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *po
	c.Items = slices.Clone(po.Items)
	c.ExpectedDate = clonePtr(po.ExpectedDate)
	return &c
}

func cloneShipment(s *entity.Shipment) *entity.Shipment {
	c := *s
	c.ShippedAt = clonePtr(s.ShippedAt)
	c.EstimatedArrival = clonePtr(s.EstimatedArrival)
	c.DeliveredAt = clonePtr(s.DeliveredAt)
	return &c
}

func cloneBOM(b *entity.BillOfMaterial) *entity.BillOfMaterial {
	c := *b
	c.Items = slices.Clone(b.Items)
	return &c
}

func cloneWorkOrder(w *entity.WorkOrder) *entity.WorkOrder {
	c := *w
	c.StartDate = clonePtr(w.StartDate)
	c.DueDate = clonePtr(w.DueDate)
	c.CompletedAt = clonePtr(w.CompletedAt)
	return &c
}

func cloneRFQ(r *entity.RequestForQuotation) *entity.RequestForQuotation {
	c := *r
	c.Items = slices.Clone(r.Items)
	c.DueDate = clonePtr(r.DueDate)
	c.QuotedAmount = clonePtr(r.QuotedAmount)
	return &c
}
