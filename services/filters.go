package services

import (
	"strings"

	"trackhub/backend/models"
)

// The filter layer produces derived views of the record collections. Every
// function here is pure: inputs are never mutated and result order follows
// source order. All active conditions are ANDed.

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// statusActive reports whether a status filter is set, honoring the "all"
// sentinel that disables it.
func statusActive(status string) bool {
	return status != "" && status != models.FilterAll
}

// FilterStudents applies free-text search (name+email) and grade level.
func FilterStudents(students []models.Student, q models.StudentQuery) []models.Student {
	var out []models.Student
	for _, s := range students {
		if q.Search != "" && !containsFold(s.Name, q.Search) && !containsFold(s.Email, q.Search) {
			continue
		}
		if statusActive(q.GradeLevel) && s.GradeLevel != q.GradeLevel {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterGrades applies the scoped-student filter, subject equality, the
// inclusive date range and any custom operator filters.
func FilterGrades(grades []models.Grade, q models.GradeQuery) []models.Grade {
	var out []models.Grade
	for _, g := range grades {
		if q.StudentID != "" && g.StudentID != q.StudentID {
			continue
		}
		if statusActive(q.Subject) && g.Subject != q.Subject {
			continue
		}
		if !inDateRange(g.Date, q.DateRange) {
			continue
		}
		if !MatchesFilters(gradeFields(g), q.Filters) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// FilterAttendance applies the scoped-student filter, status and date range.
func FilterAttendance(records []models.AttendanceRecord, q models.AttendanceQuery) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, rec := range records {
		if q.StudentID != "" && rec.StudentID != q.StudentID {
			continue
		}
		if statusActive(q.Status) && rec.Status != q.Status {
			continue
		}
		if !inDateRange(rec.Date, q.DateRange) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FilterAssignments applies title search, a completion-status filter (an
// assignment matches when any completion entry carries the status) and a due
// date range.
func FilterAssignments(assignments []models.Assignment, q models.AssignmentQuery) []models.Assignment {
	var out []models.Assignment
	for _, a := range assignments {
		if q.Search != "" && !containsFold(a.Title, q.Search) && !containsFold(a.Description, q.Search) {
			continue
		}
		if statusActive(q.Status) {
			matched := false
			for _, c := range a.StudentCompletions {
				if c.Status == q.Status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if !inDateRange(a.DueDate, q.DateRange) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterProducts applies free-text search (name+sku), category and location.
func FilterProducts(products []models.Product, q models.ProductQuery) []models.Product {
	var out []models.Product
	for _, p := range products {
		if q.Search != "" && !containsFold(p.Name, q.Search) && !containsFold(p.SKU, q.Search) {
			continue
		}
		if statusActive(q.Category) && p.Category != q.Category {
			continue
		}
		if statusActive(q.Location) && p.Location != q.Location {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FilterMovements applies free-text search over the reason and the resolved
// product name, a type filter and a date range. Movements referencing a
// deleted product resolve to the "Unknown Product" placeholder so they stay
// searchable rather than disappearing.
func FilterMovements(movements []models.InventoryMovement, products []models.Product, q models.MovementQuery) []models.InventoryMovement {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	var out []models.InventoryMovement
	for _, m := range movements {
		if q.ProductID != "" && m.ProductID != q.ProductID {
			continue
		}
		if statusActive(q.Type) && m.Type != q.Type {
			continue
		}
		if !inDateRange(m.Date, q.DateRange) {
			continue
		}
		if q.Search != "" {
			name, ok := names[m.ProductID]
			if !ok {
				name = models.UnknownName + " Product"
			}
			if !containsFold(m.Reason, q.Search) && !containsFold(name, q.Search) {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// FilterAppointments applies customer/vehicle search, status, priority and a
// date range.
func FilterAppointments(appointments []models.Appointment, q models.AppointmentQuery) []models.Appointment {
	var out []models.Appointment
	for _, a := range appointments {
		if q.Search != "" && !containsFold(a.CustomerName, q.Search) && !containsFold(a.Vehicle, q.Search) {
			continue
		}
		if statusActive(q.Status) && a.Status != q.Status {
			continue
		}
		if statusActive(q.Priority) && a.Priority != q.Priority {
			continue
		}
		if !inDateRange(a.Date, q.DateRange) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// gradeFields exposes the filterable fields of a grade record to the custom
// operator filters.
func gradeFields(g models.Grade) map[string]interface{} {
	return map[string]interface{}{
		"subject": g.Subject,
		"score":   g.Score,
		"date":    g.Date,
	}
}

// MatchesFilters conjunctively applies custom operator filters against a
// record's field map. A filter naming an unknown field matches nothing.
// Numeric operators require numeric operands on both sides; the engine does
// not coerce strings to numbers.
func MatchesFilters(fields map[string]interface{}, filters []models.FilterParameter) bool {
	for _, f := range filters {
		value, ok := fields[f.Field]
		if !ok {
			return false
		}
		if !matchesOperator(value, f) {
			return false
		}
	}
	return true
}

func matchesOperator(value interface{}, f models.FilterParameter) bool {
	switch f.Operator {
	case "equals":
		if a, aok := toNumber(value); aok {
			if b, bok := toNumber(f.Value); bok {
				return a == b
			}
			return false
		}
		return toString(value) == toString(f.Value)
	case "greaterThan":
		a, aok := toNumber(value)
		b, bok := toNumber(f.Value)
		return aok && bok && a > b
	case "lessThan":
		a, aok := toNumber(value)
		b, bok := toNumber(f.Value)
		return aok && bok && a < b
	case "between":
		a, aok := toNumber(value)
		lo, lok := toNumber(f.Value)
		hi, hok := toNumber(f.SecondValue)
		return aok && lok && hok && a >= lo && a <= hi
	case "contains":
		return containsFold(toString(value), toString(f.Value))
	default:
		// Unknown operator: degrade to no match rather than erroring
		return false
	}
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
