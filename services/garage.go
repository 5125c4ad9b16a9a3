package services

import (
	"sort"
	"time"

	"trackhub/backend/models"
)

// BuildGarageStats summarises the appointment book and service history.
// Status counts are zero-filled, upcoming counts scheduled appointments from
// today onward, and revenue is service cost summed per calendar month.
func BuildGarageStats(appointments []models.Appointment, history []models.ServiceRecord, now time.Time) models.GarageStats {
	var stats models.GarageStats
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, a := range appointments {
		switch a.Status {
		case models.AppointmentScheduled:
			stats.Scheduled++
		case models.AppointmentInProgress:
			stats.InProgress++
		case models.AppointmentCompleted:
			stats.Completed++
		case models.AppointmentCancelled:
			stats.Cancelled++
		}
		if a.Status == models.AppointmentScheduled {
			if t, ok := parseDate(a.Date); ok && !t.Before(today) {
				stats.Upcoming++
			}
		}
	}

	byMonth := make(map[string]float64)
	for _, rec := range history {
		t, ok := parseDate(rec.Date)
		if !ok {
			continue
		}
		byMonth[t.Format("2006-01")] += rec.Cost
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	stats.RevenueByMonth = make([]models.MonthlyAmount, 0, len(months))
	for _, m := range months {
		stats.RevenueByMonth = append(stats.RevenueByMonth, models.MonthlyAmount{Month: m, Total: byMonth[m]})
	}
	return stats
}

// VehicleHistory returns the service records for one vehicle, most recent
// first.
func VehicleHistory(history []models.ServiceRecord, vehicle string) []models.ServiceRecord {
	var out []models.ServiceRecord
	for _, rec := range history {
		if rec.Vehicle == vehicle {
			out = append(out, rec)
		}
	}
	return SortServiceRecords(out, models.SortSpec{Field: "date", Descending: true})
}

// SortServiceRecords orders service history by the named column.
func SortServiceRecords(history []models.ServiceRecord, spec models.SortSpec) []models.ServiceRecord {
	var key func(models.ServiceRecord) sortKey
	switch spec.Field {
	case "vehicle":
		key = func(r models.ServiceRecord) sortKey { return stringKey(r.Vehicle) }
	case "cost":
		key = func(r models.ServiceRecord) sortKey { return numberKey(r.Cost) }
	case "date":
		key = func(r models.ServiceRecord) sortKey { return dateKey(r.Date) }
	default:
		out := make([]models.ServiceRecord, len(history))
		copy(out, history)
		return out
	}
	return sortSlice(history, key, spec.Descending)
}
