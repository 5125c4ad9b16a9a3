package services

import (
	"sort"
	"time"

	"trackhub/backend/models"
)

// GradeDistribution partitions scores into the fixed A-F bands. Bands with
// no grades still appear with a zero count, and the counts always sum to the
// number of input grades.
func GradeDistribution(grades []models.Grade) []models.BandCount {
	counts := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}
	for _, g := range grades {
		switch {
		case g.Score >= 90:
			counts["A"]++
		case g.Score >= 80:
			counts["B"]++
		case g.Score >= 70:
			counts["C"]++
		case g.Score >= 60:
			counts["D"]++
		default:
			counts["F"]++
		}
	}
	bands := []string{"A", "B", "C", "D", "F"}
	out := make([]models.BandCount, 0, len(bands))
	for _, b := range bands {
		out = append(out, models.BandCount{Band: b, Count: counts[b]})
	}
	return out
}

// AttendanceOverview counts records per status, zero-filled.
func AttendanceOverview(records []models.AttendanceRecord) models.AttendanceOverview {
	var o models.AttendanceOverview
	for _, rec := range records {
		switch rec.Status {
		case models.AttendancePresent:
			o.Present++
		case models.AttendanceAbsent:
			o.Absent++
		case models.AttendanceLate:
			o.Late++
		case models.AttendanceExcused:
			o.Excused++
		}
	}
	return o
}

// AssignmentCompletionOverview counts completion entries per status summed
// over every assignment's per-student entries.
func AssignmentCompletionOverview(assignments []models.Assignment) models.CompletionOverview {
	var o models.CompletionOverview
	for _, a := range assignments {
		for _, c := range a.StudentCompletions {
			switch c.Status {
			case models.CompletionCompleted:
				o.Completed++
			case models.CompletionInProgress:
				o.InProgress++
			case models.CompletionNotStarted:
				o.NotStarted++
			}
		}
	}
	return o
}

// AttendanceTrends groups attendance records by calendar date and keeps the
// trailing 10 dates that have data, oldest first. Records whose date does
// not parse are left out of the grouping.
func AttendanceTrends(records []models.AttendanceRecord) []models.TrendPoint {
	type bucket struct {
		day   time.Time
		point models.TrendPoint
	}
	buckets := make(map[string]*bucket)
	for _, rec := range records {
		t, ok := parseDate(rec.Date)
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		label := day.Format(trendDateFormat)
		b, exists := buckets[label]
		if !exists {
			b = &bucket{day: day, point: models.TrendPoint{Date: label}}
			buckets[label] = b
		}
		switch rec.Status {
		case models.AttendancePresent:
			b.point.Present++
		case models.AttendanceAbsent:
			b.point.Absent++
		case models.AttendanceLate:
			b.point.Late++
		case models.AttendanceExcused:
			b.point.Excused++
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].day.Before(ordered[j].day) })

	// Trailing window over dates with data, not a rolling time window
	if len(ordered) > 10 {
		ordered = ordered[len(ordered)-10:]
	}
	out := make([]models.TrendPoint, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.point)
	}
	return out
}

// BuildStudentReport computes the per-student progress report from a frozen
// filter snapshot. All rates are defined as 0 when their denominator is
// empty, and a deleted student renders the "Unknown Student" placeholder
// rather than failing.
func BuildStudentReport(students []models.Student, grades []models.Grade, attendance []models.AttendanceRecord, assignments []models.Assignment, req models.StudentReportRequest) models.StudentReport {
	report := models.StudentReport{
		StudentID:   req.StudentID,
		StudentName: models.UnknownName + " Student",
	}
	for _, s := range students {
		if s.ID == req.StudentID {
			report.StudentName = s.Name
			break
		}
	}

	report.Grades = FilterGrades(grades, models.GradeQuery{
		StudentID: req.StudentID,
		DateRange: req.DateRange,
		Filters:   req.GradeFilters,
	})
	if len(report.Grades) > 0 {
		var sum float64
		for _, g := range report.Grades {
			sum += g.Score
		}
		report.GradeAverage = sum / float64(len(report.Grades))
	}

	report.Attendance = FilterAttendance(attendance, models.AttendanceQuery{
		StudentID: req.StudentID,
		DateRange: req.DateRange,
	})
	if len(report.Attendance) > 0 {
		present := 0
		for _, rec := range report.Attendance {
			if rec.Status == models.AttendancePresent {
				present++
			}
		}
		report.AttendanceRate = float64(present) / float64(len(report.Attendance)) * 100
	}

	report.Assignments = studentAssignments(assignments, req)
	report.OverallProgress = (report.GradeAverage + report.AttendanceRate) / 2
	return report
}

// studentAssignments collects assignment/completion pairs for one student,
// filtered by due date and completion status. A student with no completion
// entry on an assignment gets a synthesized not-started placeholder so the
// list stays complete.
func studentAssignments(assignments []models.Assignment, req models.StudentReportRequest) []models.AssignmentStatus {
	var out []models.AssignmentStatus
	for _, a := range assignments {
		if !inDateRange(a.DueDate, req.DateRange) {
			continue
		}
		completion := models.StudentCompletion{
			StudentID: req.StudentID,
			Status:    models.CompletionNotStarted,
		}
		for _, c := range a.StudentCompletions {
			if c.StudentID == req.StudentID {
				completion = c
				break
			}
		}
		if len(req.Statuses) > 0 && !containsStatus(req.Statuses, completion.Status) {
			continue
		}
		out = append(out, models.AssignmentStatus{Assignment: a, Completion: completion})
	}
	return out
}

func containsStatus(statuses []string, status string) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
