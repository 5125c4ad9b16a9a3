package services

import (
	"sort"
	"time"

	"trackhub/backend/models"
)

// Sorting returns a new ordered slice and never mutates the source. Strings
// compare lexicographically (case-sensitive), numbers numerically, and
// date-like fields compare as parsed timestamps, never as raw strings.
// Unparsable dates order before every parsable one.

type sortKey struct {
	str   string
	num   float64
	ts    time.Time
	kind  byte // 's', 'n', 't'
	valid bool // timestamps only
}

func stringKey(s string) sortKey  { return sortKey{kind: 's', str: s} }
func numberKey(n float64) sortKey { return sortKey{kind: 'n', num: n} }

func dateKey(dateStr string) sortKey {
	t, ok := parseDate(dateStr)
	return sortKey{kind: 't', ts: t, valid: ok}
}

func (a sortKey) less(b sortKey) bool {
	switch a.kind {
	case 'n':
		return a.num < b.num
	case 't':
		if a.valid != b.valid {
			return !a.valid
		}
		return a.ts.Before(b.ts)
	default:
		return a.str < b.str
	}
}

func sortSlice[T any](items []T, key func(T) sortKey, desc bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return key(out[j]).less(key(out[i]))
		}
		return key(out[i]).less(key(out[j]))
	})
	return out
}

// SortProducts orders a product view by the named column. An unknown field
// leaves the source order unchanged.
func SortProducts(products []models.Product, spec models.SortSpec) []models.Product {
	var key func(models.Product) sortKey
	switch spec.Field {
	case "name":
		key = func(p models.Product) sortKey { return stringKey(p.Name) }
	case "sku":
		key = func(p models.Product) sortKey { return stringKey(p.SKU) }
	case "category":
		key = func(p models.Product) sortKey { return stringKey(p.Category) }
	case "quantity":
		key = func(p models.Product) sortKey { return numberKey(float64(p.Quantity)) }
	case "location":
		key = func(p models.Product) sortKey { return stringKey(p.Location) }
	case "lastUpdated":
		key = func(p models.Product) sortKey {
			return sortKey{kind: 't', ts: p.LastUpdated, valid: !p.LastUpdated.IsZero()}
		}
	default:
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}
	return sortSlice(products, key, spec.Descending)
}

// SortMovements orders a movement view by the named column.
func SortMovements(movements []models.InventoryMovement, spec models.SortSpec) []models.InventoryMovement {
	var key func(models.InventoryMovement) sortKey
	switch spec.Field {
	case "type":
		key = func(m models.InventoryMovement) sortKey { return stringKey(m.Type) }
	case "quantity":
		key = func(m models.InventoryMovement) sortKey { return numberKey(float64(m.Quantity)) }
	case "reason":
		key = func(m models.InventoryMovement) sortKey { return stringKey(m.Reason) }
	case "date":
		key = func(m models.InventoryMovement) sortKey { return dateKey(m.Date) }
	default:
		out := make([]models.InventoryMovement, len(movements))
		copy(out, movements)
		return out
	}
	return sortSlice(movements, key, spec.Descending)
}

// SortStudents orders the roster by the named column.
func SortStudents(students []models.Student, spec models.SortSpec) []models.Student {
	var key func(models.Student) sortKey
	switch spec.Field {
	case "name":
		key = func(s models.Student) sortKey { return stringKey(s.Name) }
	case "email":
		key = func(s models.Student) sortKey { return stringKey(s.Email) }
	case "gradeLevel":
		key = func(s models.Student) sortKey { return stringKey(s.GradeLevel) }
	case "createdAt":
		key = func(s models.Student) sortKey {
			return sortKey{kind: 't', ts: s.CreatedAt, valid: !s.CreatedAt.IsZero()}
		}
	default:
		out := make([]models.Student, len(students))
		copy(out, students)
		return out
	}
	return sortSlice(students, key, spec.Descending)
}

// SortGrades orders grade records by the named column.
func SortGrades(grades []models.Grade, spec models.SortSpec) []models.Grade {
	var key func(models.Grade) sortKey
	switch spec.Field {
	case "subject":
		key = func(g models.Grade) sortKey { return stringKey(g.Subject) }
	case "score":
		key = func(g models.Grade) sortKey { return numberKey(g.Score) }
	case "date":
		key = func(g models.Grade) sortKey { return dateKey(g.Date) }
	default:
		out := make([]models.Grade, len(grades))
		copy(out, grades)
		return out
	}
	return sortSlice(grades, key, spec.Descending)
}

// SortAppointments orders the appointment book by the named column.
func SortAppointments(appointments []models.Appointment, spec models.SortSpec) []models.Appointment {
	var key func(models.Appointment) sortKey
	switch spec.Field {
	case "customerName":
		key = func(a models.Appointment) sortKey { return stringKey(a.CustomerName) }
	case "vehicle":
		key = func(a models.Appointment) sortKey { return stringKey(a.Vehicle) }
	case "status":
		key = func(a models.Appointment) sortKey { return stringKey(a.Status) }
	case "priority":
		key = func(a models.Appointment) sortKey { return stringKey(a.Priority) }
	case "date":
		key = func(a models.Appointment) sortKey { return dateKey(a.Date) }
	default:
		out := make([]models.Appointment, len(appointments))
		copy(out, appointments)
		return out
	}
	return sortSlice(appointments, key, spec.Descending)
}
