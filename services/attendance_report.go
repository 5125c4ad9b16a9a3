package services

import (
	"sort"
	"time"

	"trackhub/backend/models"
)

// Attendance report types
const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportCustom  = "custom"
)

const dayFormat = "2006-01-02"

// resolveReportRange turns a report type into a concrete inclusive date
// window. Weekly is the ISO week starting Monday; monthly is the calendar
// month. A custom range with a missing or unparsable bound falls back to
// today for that bound.
func resolveReportRange(req models.AttendanceReportRequest, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch req.ReportType {
	case ReportWeekly:
		// time.Weekday puts Sunday at 0; shift so Monday opens the week
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case ReportMonthly:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case ReportCustom:
		start, end := today, today
		if t, ok := parseDate(req.CustomRange.Start); ok {
			start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		if t, ok := parseDate(req.CustomRange.End); ok {
			end = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return start, end
	default: // daily
		return today, today
	}
}

// BuildAttendanceReport computes a daily/weekly/monthly/custom attendance
// report. Each day with data gets a row with totalStudents taken from the
// current roster size, and the summary fields are plain arithmetic means over
// those days. The overall rate is a mean of daily rates, not a
// totals-weighted rate; that matches the products this report feeds.
func BuildAttendanceReport(records []models.AttendanceRecord, students []models.Student, req models.AttendanceReportRequest, now time.Time) models.AttendanceReportData {
	start, end := resolveReportRange(req, now)
	report := models.AttendanceReportData{
		ReportType: req.ReportType,
		StartDate:  start.Format(dayFormat),
		EndDate:    end.Format(dayFormat),
	}
	if report.ReportType == "" {
		report.ReportType = ReportDaily
	}

	roster := len(students)
	byDay := make(map[string]*models.DailyAttendance)
	for _, rec := range records {
		t, ok := parseDate(rec.Date)
		if !ok {
			continue
		}
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start) || day.After(end) {
			continue
		}
		key := day.Format(dayFormat)
		row, exists := byDay[key]
		if !exists {
			row = &models.DailyAttendance{Date: key, TotalStudents: roster}
			byDay[key] = row
		}
		switch rec.Status {
		case models.AttendancePresent:
			row.Present++
		case models.AttendanceAbsent:
			row.Absent++
		case models.AttendanceLate:
			row.Late++
		case models.AttendanceExcused:
			row.Excused++
		}
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sumPresent, sumAbsent, sumLate, sumExcused, sumRate float64
	for _, k := range keys {
		row := byDay[k]
		if roster > 0 {
			row.PresentRate = float64(row.Present) / float64(roster) * 100
		}
		sumPresent += float64(row.Present)
		sumAbsent += float64(row.Absent)
		sumLate += float64(row.Late)
		sumExcused += float64(row.Excused)
		sumRate += row.PresentRate
		report.Days = append(report.Days, *row)
	}

	if n := float64(len(report.Days)); n > 0 {
		report.AveragePresent = sumPresent / n
		report.AverageAbsent = sumAbsent / n
		report.AverageLate = sumLate / n
		report.AverageExcused = sumExcused / n
		report.OverallAttendanceRate = sumRate / n
	}
	return report
}
