package models

// Collection names used by the persistence layer
const (
	CollectionStudents       = "students"
	CollectionGrades         = "grades"
	CollectionAttendance     = "attendance"
	CollectionAssignments    = "assignments"
	CollectionMessages       = "messages"
	CollectionConferences    = "conferences"
	CollectionProducts       = "products"
	CollectionMovements      = "movements"
	CollectionAppointments   = "appointments"
	CollectionServiceRecords = "serviceRecords"
	CollectionSavedReports   = "savedReports"
)

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Attendance record methods
const (
	RecordMethodManual    = "manual"
	RecordMethodAutomated = "automated"
	RecordMethodBulk      = "bulk"
)

// Assignment completion statuses
const (
	CompletionCompleted  = "completed"
	CompletionInProgress = "in-progress"
	CompletionNotStarted = "not-started"
)

// Inventory movement types
const (
	MovementIn       = "in"
	MovementOut      = "out"
	MovementTransfer = "transfer"
)

// Appointment statuses
const (
	AppointmentScheduled  = "scheduled"
	AppointmentInProgress = "in-progress"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
)

// Appointment priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Conference statuses
const (
	ConferenceScheduled = "scheduled"
	ConferenceCompleted = "completed"
	ConferenceCancelled = "cancelled"
)

// FilterAll is the sentinel value that disables a status filter
const FilterAll = "all"

// LowStockThreshold is the quantity below which a product counts as low stock
const LowStockThreshold = 10

// UnknownName is the placeholder rendered when a foreign key points at a
// record that no longer exists
const UnknownName = "Unknown"
