// Package listing implementa el estado de listas del dashboard del lado del servidor:
// búsqueda, filtro por estado, ordenamiento asc/desc, paginación y agregados simples.
// Todas las funciones devuelven slices nuevos; la entrada no se modifica.
package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sentidos de ordenamiento.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Límites de paginación (mismos que los handlers de productos).
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query parámetros de listado tal como llegan en la query string.
type Query struct {
	Search    string `query:"search"`
	Status    string `query:"status"`
	SortField string `query:"sort"`
	SortOrder string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `query:"offset" validate:"min=0"`
}

// Normalize aplica valores por defecto y recorta límites fuera de rango.
func (q *Query) Normalize() {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.SortOrder = strings.ToLower(q.SortOrder)
	if q.SortOrder != Desc {
		q.SortOrder = Asc
	}
	q.Search = strings.TrimSpace(q.Search)
}

// SortState campo y sentido de ordenamiento activos.
type SortState struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Toggle reproduce el clic en la cabecera de una columna: el mismo campo invierte
// el sentido; un campo nuevo empieza ascendente.
func Toggle(s SortState, field string) SortState {
	if s.Field != field {
		return SortState{Field: field, Order: Asc}
	}
	if s.Order == Asc {
		return SortState{Field: field, Order: Desc}
	}
	return SortState{Field: field, Order: Asc}
}

// Comparator devuelve <0, 0, >0 como cmp.Compare.
type Comparator[T any] func(a, b T) int

// Spec describe cómo listar un tipo: su estado, sus campos de texto buscables y
// los comparadores por nombre de campo.
type Spec[T any] struct {
	Status  func(T) string
	Text    func(T) []string
	Sorters map[string]Comparator[T]
}

// Filter conserva los elementos que cumplen keep, en su orden relativo original.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterByStatus filtra por estado exacto. Estado vacío devuelve todos.
func FilterByStatus[T any](items []T, status string, statusOf func(T) string) []T {
	if status == "" || statusOf == nil {
		return slices.Clone(items)
	}
	return Filter(items, func(it T) bool { return statusOf(it) == status })
}

// Search filtra por subcadena sin distinguir mayúsculas en cualquiera de los campos de texto.
func Search[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || fields == nil {
		return slices.Clone(items)
	}
	return Filter(items, func(it T) bool {
		for _, f := range fields(it) {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	})
}

// Sort ordena de forma estable por el campo indicado. Un campo desconocido (o vacío)
// conserva el orden de entrada. Ordenar dos veces con el mismo campo y sentido
// produce el mismo resultado.
func Sort[T any](items []T, field, order string, sorters map[string]Comparator[T]) []T {
	out := slices.Clone(items)
	cmpFn, ok := sorters[field]
	if !ok {
		return out
	}
	if order == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return cmpFn(b, a) })
		return out
	}
	slices.SortStableFunc(out, cmpFn)
	return out
}

// Paginate recorta items a la ventana [offset, offset+limit).
func Paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return slices.Clone(items[offset:end])
}

// Apply ejecuta búsqueda → filtro de estado → orden → paginación.
// total es la cantidad de elementos antes de paginar.
func Apply[T any](items []T, q Query, spec Spec[T]) (page []T, total int) {
	q.Normalize()
	filtered := Search(items, q.Search, spec.Text)
	filtered = FilterByStatus(filtered, q.Status, spec.Status)
	sorted := Sort(filtered, q.SortField, q.SortOrder, spec.Sorters)
	return Paginate(sorted, q.Limit, q.Offset), len(sorted)
}

// CountBy cuenta elementos por clave (ej. estado).
func CountBy[T any](items []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[key(it)]++
	}
	return out
}

// SumDecimal suma un campo monetario.
func SumDecimal[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(value(it))
	}
	return total
}

// ── Comparadores ─────────────────────────────────────────────────────────────

// ByString compara un campo de texto sin distinguir mayúsculas.
func ByString[T any](f func(T) string) Comparator[T] {
	return func(a, b T) int {
		return strings.Compare(strings.ToLower(f(a)), strings.ToLower(f(b)))
	}
}

// ByDecimal compara un campo decimal.
func ByDecimal[T any](f func(T) decimal.Decimal) Comparator[T] {
	return func(a, b T) int { return f(a).Cmp(f(b)) }
}

// ByInt compara un campo entero.
func ByInt[T any](f func(T) int) Comparator[T] {
	return func(a, b T) int {
		x, y := f(a), f(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

// ByTime compara un campo de fecha.
func ByTime[T any](f func(T) time.Time) Comparator[T] {
	return func(a, b T) int { return f(a).Compare(f(b)) }
}

// ByOptionalTime compara una fecha opcional; las fechas nil van al final en ascendente.
func ByOptionalTime[T any](f func(T) *time.Time) Comparator[T] {
	return func(a, b T) int {
		x, y := f(a), f(b)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return 1
		case y == nil:
			return -1
		}
		return x.Compare(*y)
	}
}
