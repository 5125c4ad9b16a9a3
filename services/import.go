package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"trackhub/backend/models"
)

// ImportResult reports what an import did. A bad row never aborts the whole
// import; it is counted and reported instead.
type ImportResult struct {
	Collection string   `json:"collection"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

// ImportCollection ingests CSV or JSON rows into a collection. Every row
// goes through per-entity coercion (missing strings default to empty or
// "Unknown" for name fields, numbers to 0, unknown statuses to the entity's
// default), required-field validation and foreign-key checks against the
// currently known parent records. Rows already carrying an id replace the
// record with that id, so an export re-imported into an empty state
// reproduces the original records.
func (c *Controller) ImportCollection(collection, format string, data []byte) (ImportResult, error) {
	rows, err := parseRows(format, data)
	if err != nil {
		return ImportResult{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := ImportResult{Collection: collection}
	for i, row := range rows {
		if err := c.importRow(collection, row); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	c.save(collection)
	c.logger.Info("import finished",
		zap.String("collection", collection),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (c *Controller) importRow(collection string, row map[string]interface{}) error {
	switch collection {
	case models.CollectionStudents:
		s := models.Student{
			ID:          asString(row["id"]),
			Name:        stringOr(row["name"], models.UnknownName),
			Email:       asString(row["email"]),
			Phone:       asString(row["phone"]),
			GradeLevel:  asString(row["gradeLevel"]),
			ParentName:  asString(row["parentName"]),
			ParentPhone: asString(row["parentPhone"]),
		}
		if t, ok := parseDate(asString(row["createdAt"])); ok {
			s.CreatedAt = t
		} else {
			s.CreatedAt = time.Now()
		}
		if err := validate.Struct(s); err != nil {
			return err
		}
		if s.ID == "" {
			s.ID = newID()
		}
		c.upsertStudent(s)
		return nil

	case models.CollectionGrades:
		g := models.Grade{
			ID:        asString(row["id"]),
			StudentID: asString(row["studentId"]),
			Subject:   stringOr(row["subject"], models.UnknownName),
			Score:     asNumber(row["score"]),
			Date:      asString(row["date"]),
		}
		if err := validate.Struct(g); err != nil {
			return err
		}
		if !c.studentExists(g.StudentID) {
			return ErrUnknownStudent
		}
		if g.ID == "" {
			g.ID = newID()
		}
		c.upsertGrade(g)
		return nil

	case models.CollectionAttendance:
		rec := models.AttendanceRecord{
			ID:           asString(row["id"]),
			StudentID:    asString(row["studentId"]),
			Date:         asString(row["date"]),
			Status:       coerceStatus(asString(row["status"]), attendanceStatuses, models.AttendancePresent),
			Notes:        asString(row["notes"]),
			RecordMethod: coerceStatus(asString(row["recordMethod"]), recordMethods, models.RecordMethodManual),
		}
		if err := validate.Struct(rec); err != nil {
			return err
		}
		if !c.studentExists(rec.StudentID) {
			return ErrUnknownStudent
		}
		// Imports respect the (studentId, date) upsert invariant too
		for i, existing := range c.state.Attendance {
			if existing.StudentID == rec.StudentID && existing.Date == rec.Date {
				rec.ID = existing.ID
				c.state.Attendance[i] = rec
				return nil
			}
		}
		if rec.ID == "" {
			rec.ID = newID()
		}
		c.state.Attendance = append(c.state.Attendance, rec)
		return nil

	case models.CollectionAssignments:
		a := models.Assignment{
			ID:          asString(row["id"]),
			Title:       stringOr(row["title"], models.UnknownName),
			Description: asString(row["description"]),
			DueDate:     asString(row["dueDate"]),
		}
		completions, err := parseCompletions(row["studentCompletions"])
		if err != nil {
			return err
		}
		for _, comp := range completions {
			if !c.studentExists(comp.StudentID) {
				continue // orphaned completion entries are dropped
			}
			comp.Status = coerceStatus(comp.Status, completionStatuses, models.CompletionNotStarted)
			a.StudentCompletions = append(a.StudentCompletions, comp)
		}
		if err := validate.Struct(a); err != nil {
			return err
		}
		if a.ID == "" {
			a.ID = newID()
		}
		c.upsertAssignment(a)
		return nil

	case models.CollectionMessages:
		m := models.Message{
			ID:        asString(row["id"]),
			StudentID: asString(row["studentId"]),
			Subject:   asString(row["subject"]),
			Body:      asString(row["body"]),
			Date:      asString(row["date"]),
			Read:      asBool(row["read"]),
		}
		if err := validate.Struct(m); err != nil {
			return err
		}
		if !c.studentExists(m.StudentID) {
			return ErrUnknownStudent
		}
		if m.ID == "" {
			m.ID = newID()
		}
		c.upsertMessage(m)
		return nil

	case models.CollectionConferences:
		conf := models.Conference{
			ID:        asString(row["id"]),
			StudentID: asString(row["studentId"]),
			Date:      asString(row["date"]),
			Topic:     asString(row["topic"]),
			Status:    coerceStatus(asString(row["status"]), conferenceStatuses, models.ConferenceScheduled),
		}
		if err := validate.Struct(conf); err != nil {
			return err
		}
		if !c.studentExists(conf.StudentID) {
			return ErrUnknownStudent
		}
		if conf.ID == "" {
			conf.ID = newID()
		}
		c.upsertConference(conf)
		return nil

	case models.CollectionProducts:
		p := models.Product{
			ID:       asString(row["id"]),
			Name:     stringOr(row["name"], models.UnknownName),
			SKU:      stringOr(row["sku"], models.UnknownName),
			Category: asString(row["category"]),
			Quantity: int(asNumber(row["quantity"])),
			Location: asString(row["location"]),
		}
		if p.Quantity < 0 {
			p.Quantity = 0
		}
		if t, ok := parseDate(asString(row["lastUpdated"])); ok {
			p.LastUpdated = t
		} else {
			p.LastUpdated = time.Now()
		}
		if err := validate.Struct(p); err != nil {
			return err
		}
		if p.ID == "" {
			p.ID = newID()
		}
		c.upsertProduct(p)
		return nil

	case models.CollectionMovements:
		m := models.InventoryMovement{
			ID:           asString(row["id"]),
			ProductID:    asString(row["productId"]),
			Type:         coerceStatus(asString(row["type"]), movementTypes, models.MovementIn),
			Quantity:     int(asNumber(row["quantity"])),
			FromLocation: asString(row["fromLocation"]),
			ToLocation:   asString(row["toLocation"]),
			Reason:       asString(row["reason"]),
			Date:         asString(row["date"]),
			PerformedBy:  asString(row["performedBy"]),
		}
		if err := validate.Struct(m); err != nil {
			return err
		}
		if !c.productExists(m.ProductID) {
			return ErrUnknownProduct
		}
		if m.ID == "" {
			m.ID = newID()
		}
		// Imported movements are history; product quantities are not replayed
		c.upsertMovement(m)
		return nil

	case models.CollectionAppointments:
		a := models.Appointment{
			ID:           asString(row["id"]),
			CustomerName: stringOr(row["customerName"], models.UnknownName),
			Vehicle:      stringOr(row["vehicle"], models.UnknownName),
			ServiceType:  asString(row["serviceType"]),
			Date:         asString(row["date"]),
			Status:       coerceStatus(asString(row["status"]), appointmentStatuses, models.AppointmentScheduled),
			Priority:     coerceStatus(asString(row["priority"]), priorities, models.PriorityMedium),
			Notes:        asString(row["notes"]),
		}
		if err := validate.Struct(a); err != nil {
			return err
		}
		if a.ID == "" {
			a.ID = newID()
		}
		c.upsertAppointment(a)
		return nil

	case models.CollectionServiceRecords:
		rec := models.ServiceRecord{
			ID:            asString(row["id"]),
			AppointmentID: asString(row["appointmentId"]),
			Vehicle:       stringOr(row["vehicle"], models.UnknownName),
			Date:          asString(row["date"]),
			Description:   asString(row["description"]),
			Cost:          asNumber(row["cost"]),
			Mechanic:      asString(row["mechanic"]),
		}
		if err := validate.Struct(rec); err != nil {
			return err
		}
		if rec.ID == "" {
			rec.ID = newID()
		}
		c.upsertServiceRecord(rec)
		return nil

	default:
		return fmt.Errorf("unknown collection %q", collection)
	}
}

// Import upserts replace the record carrying the same id, so re-importing an
// export is idempotent. Callers hold the controller lock.

func (c *Controller) productExists(id string) bool {
	for _, p := range c.state.Products {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) upsertStudent(s models.Student) {
	for i, existing := range c.state.Students {
		if existing.ID == s.ID {
			c.state.Students[i] = s
			return
		}
	}
	c.state.Students = append(c.state.Students, s)
}

func (c *Controller) upsertGrade(g models.Grade) {
	for i, existing := range c.state.Grades {
		if existing.ID == g.ID {
			c.state.Grades[i] = g
			return
		}
	}
	c.state.Grades = append(c.state.Grades, g)
}

func (c *Controller) upsertAssignment(a models.Assignment) {
	for i, existing := range c.state.Assignments {
		if existing.ID == a.ID {
			c.state.Assignments[i] = a
			return
		}
	}
	c.state.Assignments = append(c.state.Assignments, a)
}

func (c *Controller) upsertMessage(m models.Message) {
	for i, existing := range c.state.Messages {
		if existing.ID == m.ID {
			c.state.Messages[i] = m
			return
		}
	}
	c.state.Messages = append(c.state.Messages, m)
}

func (c *Controller) upsertConference(conf models.Conference) {
	for i, existing := range c.state.Conferences {
		if existing.ID == conf.ID {
			c.state.Conferences[i] = conf
			return
		}
	}
	c.state.Conferences = append(c.state.Conferences, conf)
}

func (c *Controller) upsertProduct(p models.Product) {
	for i, existing := range c.state.Products {
		if existing.ID == p.ID {
			c.state.Products[i] = p
			return
		}
	}
	c.state.Products = append(c.state.Products, p)
}

func (c *Controller) upsertMovement(m models.InventoryMovement) {
	for i, existing := range c.state.Movements {
		if existing.ID == m.ID {
			c.state.Movements[i] = m
			return
		}
	}
	c.state.Movements = append(c.state.Movements, m)
}

func (c *Controller) upsertAppointment(a models.Appointment) {
	for i, existing := range c.state.Appointments {
		if existing.ID == a.ID {
			c.state.Appointments[i] = a
			return
		}
	}
	c.state.Appointments = append(c.state.Appointments, a)
}

func (c *Controller) upsertServiceRecord(rec models.ServiceRecord) {
	for i, existing := range c.state.ServiceRecords {
		if existing.ID == rec.ID {
			c.state.ServiceRecords[i] = rec
			return
		}
	}
	c.state.ServiceRecords = append(c.state.ServiceRecords, rec)
}

// parseRows turns an import payload into loosely typed row maps.
func parseRows(format string, data []byte) ([]map[string]interface{}, error) {
	switch format {
	case FormatJSON, "":
		var rows []map[string]interface{}
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("invalid JSON import payload: %w", err)
		}
		return rows, nil
	case FormatCSV:
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		records, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("invalid CSV import payload: %w", err)
		}
		if len(records) == 0 {
			return nil, nil
		}
		headers := records[0]
		rows := make([]map[string]interface{}, 0, len(records)-1)
		for _, record := range records[1:] {
			row := make(map[string]interface{}, len(headers))
			for i, h := range headers {
				if i < len(record) {
					row[h] = record[i]
				}
			}
			rows = append(rows, row)
		}
		return rows, nil
	default:
		return nil, fmt.Errorf("unknown import format %q", format)
	}
}

func parseCompletions(v interface{}) ([]models.StudentCompletion, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case string:
		if value == "" {
			return nil, nil
		}
		var completions []models.StudentCompletion
		if err := json.Unmarshal([]byte(value), &completions); err != nil {
			return nil, fmt.Errorf("invalid studentCompletions column: %w", err)
		}
		return completions, nil
	default:
		// JSON imports carry the entries as a nested array
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		var completions []models.StudentCompletion
		if err := json.Unmarshal(raw, &completions); err != nil {
			return nil, fmt.Errorf("invalid studentCompletions field: %w", err)
		}
		return completions, nil
	}
}

var (
	attendanceStatuses  = []string{models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceExcused}
	recordMethods       = []string{models.RecordMethodManual, models.RecordMethodAutomated, models.RecordMethodBulk}
	completionStatuses  = []string{models.CompletionCompleted, models.CompletionInProgress, models.CompletionNotStarted}
	movementTypes       = []string{models.MovementIn, models.MovementOut, models.MovementTransfer}
	appointmentStatuses = []string{models.AppointmentScheduled, models.AppointmentInProgress, models.AppointmentCompleted, models.AppointmentCancelled}
	conferenceStatuses  = []string{models.ConferenceScheduled, models.ConferenceCompleted, models.ConferenceCancelled}
	priorities          = []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh}
)

// statusAllowed reports whether value is one of the entity's statuses.
func statusAllowed(value string, allowed []string) bool {
	for _, s := range allowed {
		if value == s {
			return true
		}
	}
	return false
}

// coerceStatus maps an unknown status value to the entity's default.
func coerceStatus(value string, allowed []string, def string) string {
	if statusAllowed(value, allowed) {
		return value
	}
	return def
}

func asString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func stringOr(v interface{}, def string) string {
	if s := strings.TrimSpace(asString(v)); s != "" {
		return s
	}
	return def
}

func asNumber(v interface{}) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return 0
}

func asBool(v interface{}) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "1"
	}
	return false
}
