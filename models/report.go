package models

import "time"

// BandCount is one bar of the grade distribution chart.
type BandCount struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// AttendanceOverview counts attendance records per status, zero-filled.
type AttendanceOverview struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
}

// CompletionOverview counts completion entries per status across all
// assignments (sum over assignments x students).
type CompletionOverview struct {
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	NotStarted int `json:"notStarted"`
}

// TrendPoint is one dated bucket of the attendance trend chart.
type TrendPoint struct {
	Date    string `json:"date"` // formatted Jan 02, 2006
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
	Excused int    `json:"excused"`
}

// AssignmentStatus pairs an assignment with one student's completion entry.
type AssignmentStatus struct {
	Assignment Assignment        `json:"assignment"`
	Completion StudentCompletion `json:"completion"`
}

// StudentReport is the per-student progress report.
type StudentReport struct {
	StudentID       string             `json:"studentId"`
	StudentName     string             `json:"studentName"`
	GradeAverage    float64            `json:"gradeAverage"`
	AttendanceRate  float64            `json:"attendanceRate"`
	OverallProgress float64            `json:"overallProgress"`
	Grades          []Grade            `json:"grades"`
	Attendance      []AttendanceRecord `json:"attendance"`
	Assignments     []AssignmentStatus `json:"assignments"`
}

// StudentReportRequest carries the filter snapshot a report is computed from.
type StudentReportRequest struct {
	StudentID    string            `json:"studentId"`
	GradeFilters []FilterParameter `json:"gradeFilters,omitempty"`
	DateRange    DateRange         `json:"dateRange,omitempty"`
	Statuses     []string          `json:"statuses,omitempty"` // completion statuses
}

// DailyAttendance is one day's row of an attendance report.
type DailyAttendance struct {
	Date          string  `json:"date"`
	TotalStudents int     `json:"totalStudents"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	Excused       int     `json:"excused"`
	PresentRate   float64 `json:"presentRate"`
}

// AttendanceReportData is a daily/weekly/monthly/custom attendance report.
type AttendanceReportData struct {
	ReportType            string            `json:"reportType"`
	StartDate             string            `json:"startDate"`
	EndDate               string            `json:"endDate"`
	Days                  []DailyAttendance `json:"days"`
	AveragePresent        float64           `json:"averagePresent"`
	AverageAbsent         float64           `json:"averageAbsent"`
	AverageLate           float64           `json:"averageLate"`
	AverageExcused        float64           `json:"averageExcused"`
	OverallAttendanceRate float64           `json:"overallAttendanceRate"`
}

// AttendanceReportRequest selects the report window.
type AttendanceReportRequest struct {
	ReportType  string    `json:"reportType"` // daily, weekly, monthly, custom
	CustomRange DateRange `json:"customRange,omitempty"`
}

// SavedReport is a persisted report snapshot: the frozen filter config plus
// the computed data, both stored as JSON strings.
type SavedReport struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ReportType string    `json:"reportType"`
	Config     string    `json:"config"`
	Data       string    `json:"data"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
