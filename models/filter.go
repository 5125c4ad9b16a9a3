package models

// FilterParameter is a single custom filter condition applied conjunctively
// by the reporting module.
type FilterParameter struct {
	Field       string      `json:"field"`
	Operator    string      `json:"operator"` // equals, greaterThan, lessThan, between, contains
	Value       interface{} `json:"value"`
	SecondValue interface{} `json:"secondValue,omitempty"` // between only
}

// DateRange is an inclusive range over ISO date strings. An empty bound is
// unbounded on that side.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsActive reports whether at least one bound is set.
func (r DateRange) IsActive() bool {
	return r.Start != "" || r.End != ""
}

// SortSpec names a field to order by and the direction.
type SortSpec struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// StudentQuery filters the student roster.
type StudentQuery struct {
	Search     string `json:"search,omitempty"`
	GradeLevel string `json:"gradeLevel,omitempty"`
}

// GradeQuery filters grade records.
type GradeQuery struct {
	StudentID string            `json:"studentId,omitempty"`
	Subject   string            `json:"subject,omitempty"`
	DateRange DateRange         `json:"dateRange,omitempty"`
	Filters   []FilterParameter `json:"filters,omitempty"`
}

// AttendanceQuery filters attendance records.
type AttendanceQuery struct {
	StudentID string    `json:"studentId,omitempty"`
	Status    string    `json:"status,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
}

// AssignmentQuery filters assignments by completion status and due date.
type AssignmentQuery struct {
	Search    string    `json:"search,omitempty"`
	Status    string    `json:"status,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
}

// ProductQuery filters the product catalog.
type ProductQuery struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
}

// MovementQuery filters inventory movements. Search matches the movement
// reason and the resolved product name.
type MovementQuery struct {
	Search    string    `json:"search,omitempty"`
	ProductID string    `json:"productId,omitempty"`
	Type      string    `json:"type,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
}

// AppointmentQuery filters the garage appointment book.
type AppointmentQuery struct {
	Search    string    `json:"search,omitempty"`
	Status    string    `json:"status,omitempty"`
	Priority  string    `json:"priority,omitempty"`
	DateRange DateRange `json:"dateRange,omitempty"`
}
