package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"trackhub/backend/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// csvHeaders fixes the column order of each collection's delimited export,
// matching the entity field order. Importers rely on these names.
var csvHeaders = map[string][]string{
	models.CollectionStudents:       {"id", "name", "email", "phone", "gradeLevel", "parentName", "parentPhone", "createdAt"},
	models.CollectionGrades:         {"id", "studentId", "subject", "score", "date"},
	models.CollectionAttendance:     {"id", "studentId", "date", "status", "notes", "recordMethod"},
	models.CollectionAssignments:    {"id", "title", "description", "dueDate", "studentCompletions"},
	models.CollectionMessages:       {"id", "studentId", "subject", "body", "date", "read"},
	models.CollectionConferences:    {"id", "studentId", "date", "topic", "status"},
	models.CollectionProducts:       {"id", "name", "sku", "category", "quantity", "location", "lastUpdated"},
	models.CollectionMovements:      {"id", "productId", "type", "quantity", "fromLocation", "toLocation", "reason", "date", "performedBy"},
	models.CollectionAppointments:   {"id", "customerName", "vehicle", "serviceType", "date", "status", "priority", "notes"},
	models.CollectionServiceRecords: {"id", "appointmentId", "vehicle", "date", "description", "cost", "mechanic"},
}

// ExportCollection renders one collection as CSV or JSON, one row per record.
func ExportCollection(state AppState, collection, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		payload, err := collectionPayload(state, collection)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(payload, "", "  ")
	case FormatCSV:
		return exportCSV(state, collection)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func collectionPayload(state AppState, collection string) (interface{}, error) {
	switch collection {
	case models.CollectionStudents:
		return state.Students, nil
	case models.CollectionGrades:
		return state.Grades, nil
	case models.CollectionAttendance:
		return state.Attendance, nil
	case models.CollectionAssignments:
		return state.Assignments, nil
	case models.CollectionMessages:
		return state.Messages, nil
	case models.CollectionConferences:
		return state.Conferences, nil
	case models.CollectionProducts:
		return state.Products, nil
	case models.CollectionMovements:
		return state.Movements, nil
	case models.CollectionAppointments:
		return state.Appointments, nil
	case models.CollectionServiceRecords:
		return state.ServiceRecords, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

func exportCSV(state AppState, collection string) ([]byte, error) {
	headers, ok := csvHeaders[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}

	writeRow := func(fields ...string) error { return w.Write(fields) }

	var err error
	switch collection {
	case models.CollectionStudents:
		for _, s := range state.Students {
			err = writeRow(s.ID, s.Name, s.Email, s.Phone, s.GradeLevel, s.ParentName, s.ParentPhone, s.CreatedAt.Format(time.RFC3339))
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionGrades:
		for _, g := range state.Grades {
			err = writeRow(g.ID, g.StudentID, g.Subject, strconv.FormatFloat(g.Score, 'f', -1, 64), g.Date)
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionAttendance:
		for _, rec := range state.Attendance {
			err = writeRow(rec.ID, rec.StudentID, rec.Date, rec.Status, rec.Notes, rec.RecordMethod)
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionAssignments:
		for _, a := range state.Assignments {
			// Nested completion entries travel as an embedded JSON column
			completions, jerr := json.Marshal(a.StudentCompletions)
			if jerr != nil {
				return nil, jerr
			}
			err = writeRow(a.ID, a.Title, a.Description, a.DueDate, string(completions))
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionMessages:
		for _, m := range state.Messages {
			err = writeRow(m.ID, m.StudentID, m.Subject, m.Body, m.Date, strconv.FormatBool(m.Read))
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionConferences:
		for _, conf := range state.Conferences {
			err = writeRow(conf.ID, conf.StudentID, conf.Date, conf.Topic, conf.Status)
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionProducts:
		for _, p := range state.Products {
			err = writeRow(p.ID, p.Name, p.SKU, p.Category, strconv.Itoa(p.Quantity), p.Location, p.LastUpdated.Format(time.RFC3339))
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionMovements:
		for _, m := range state.Movements {
			err = writeRow(m.ID, m.ProductID, m.Type, strconv.Itoa(m.Quantity), m.FromLocation, m.ToLocation, m.Reason, m.Date, m.PerformedBy)
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionAppointments:
		for _, a := range state.Appointments {
			err = writeRow(a.ID, a.CustomerName, a.Vehicle, a.ServiceType, a.Date, a.Status, a.Priority, a.Notes)
			if err != nil {
				return nil, err
			}
		}
	case models.CollectionServiceRecords:
		for _, rec := range state.ServiceRecords {
			err = writeRow(rec.ID, rec.AppointmentID, rec.Vehicle, rec.Date, rec.Description, strconv.FormatFloat(rec.Cost, 'f', -1, 64), rec.Mechanic)
			if err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
