package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"trackhub/backend/database"
	"trackhub/backend/models"
)

// AppState owns every record collection. The engine's aggregate functions
// only ever read it; mutations go through the Controller so that the touched
// collections are written back after each change.
type AppState struct {
	Students       []models.Student
	Grades         []models.Grade
	Attendance     []models.AttendanceRecord
	Assignments    []models.Assignment
	Messages       []models.Message
	Conferences    []models.Conference
	Products       []models.Product
	Movements      []models.InventoryMovement
	Appointments   []models.Appointment
	ServiceRecords []models.ServiceRecord
	SavedReports   []models.SavedReport
}

// CollectionStore persists named JSON-encoded collections.
type CollectionStore interface {
	Save(name, data string) error
	Load(name string) (string, bool, error)
}

// DBStore is the sqlite-backed CollectionStore.
type DBStore struct{}

func (DBStore) Save(name, data string) error { return database.SaveCollection(name, data) }

func (DBStore) Load(name string) (string, bool, error) {
	return database.LoadCollection(name)
}

// Controller is the single owner of the application state. It loads the
// collections at startup, applies mutations, and saves a collection back
// after every mutation that touches it. Aggregates are recomputed on demand
// from the current state, never cached.
type Controller struct {
	mu     sync.RWMutex
	state  AppState
	store  CollectionStore
	logger *zap.Logger
}

// NewController builds a controller around a store. A nil store keeps the
// state purely in memory, which the tests rely on.
func NewController(store CollectionStore, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{store: store, logger: logger}
}

// LoadState reads every named collection from the store into memory.
// Collections that have never been saved start empty.
func (c *Controller) LoadState() error {
	if c.store == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	targets := map[string]interface{}{
		models.CollectionStudents:       &c.state.Students,
		models.CollectionGrades:         &c.state.Grades,
		models.CollectionAttendance:     &c.state.Attendance,
		models.CollectionAssignments:    &c.state.Assignments,
		models.CollectionMessages:       &c.state.Messages,
		models.CollectionConferences:    &c.state.Conferences,
		models.CollectionProducts:       &c.state.Products,
		models.CollectionMovements:      &c.state.Movements,
		models.CollectionAppointments:   &c.state.Appointments,
		models.CollectionServiceRecords: &c.state.ServiceRecords,
		models.CollectionSavedReports:   &c.state.SavedReports,
	}
	for name, target := range targets {
		data, found, err := c.store.Load(name)
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		if !found {
			continue
		}
		if err := json.Unmarshal([]byte(data), target); err != nil {
			return fmt.Errorf("failed to decode collection %s: %w", name, err)
		}
	}
	c.logger.Info("state loaded",
		zap.Int("students", len(c.state.Students)),
		zap.Int("products", len(c.state.Products)),
		zap.Int("appointments", len(c.state.Appointments)))
	return nil
}

// save writes one collection back to the store. The in-memory mutation has
// already been applied; a persistence failure is logged, not rolled back.
func (c *Controller) save(name string) {
	if c.store == nil {
		return
	}
	var payload interface{}
	switch name {
	case models.CollectionStudents:
		payload = c.state.Students
	case models.CollectionGrades:
		payload = c.state.Grades
	case models.CollectionAttendance:
		payload = c.state.Attendance
	case models.CollectionAssignments:
		payload = c.state.Assignments
	case models.CollectionMessages:
		payload = c.state.Messages
	case models.CollectionConferences:
		payload = c.state.Conferences
	case models.CollectionProducts:
		payload = c.state.Products
	case models.CollectionMovements:
		payload = c.state.Movements
	case models.CollectionAppointments:
		payload = c.state.Appointments
	case models.CollectionServiceRecords:
		payload = c.state.ServiceRecords
	case models.CollectionSavedReports:
		payload = c.state.SavedReports
	default:
		c.logger.Warn("unknown collection", zap.String("name", name))
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("failed to encode collection", zap.String("name", name), zap.Error(err))
		return
	}
	if err := c.store.Save(name, string(data)); err != nil {
		c.logger.Error("failed to save collection", zap.String("name", name), zap.Error(err))
	}
}

// Snapshot returns a copy of the full state for export and backup. The
// collection slices are copied so callers can serialize outside the lock.
func (c *Controller) Snapshot() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AppState{
		Students:       copySlice(c.state.Students),
		Grades:         copySlice(c.state.Grades),
		Attendance:     copySlice(c.state.Attendance),
		Assignments:    copyAssignments(c.state.Assignments),
		Messages:       copySlice(c.state.Messages),
		Conferences:    copySlice(c.state.Conferences),
		Products:       copySlice(c.state.Products),
		Movements:      copySlice(c.state.Movements),
		Appointments:   copySlice(c.state.Appointments),
		ServiceRecords: copySlice(c.state.ServiceRecords),
		SavedReports:   copySlice(c.state.SavedReports),
	}
}

func copySlice[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// copyAssignments also copies each assignment's completion slice; the
// elements hold a nested slice, so a flat copy would still alias it.
func copyAssignments(src []models.Assignment) []models.Assignment {
	out := make([]models.Assignment, len(src))
	copy(out, src)
	for i := range out {
		out[i].StudentCompletions = copySlice(out[i].StudentCompletions)
	}
	return out
}

// Students returns a copy of the roster, optionally filtered and sorted.
func (c *Controller) Students(q models.StudentQuery, spec models.SortSpec) []models.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SortStudents(FilterStudents(c.state.Students, q), spec)
}

// Grades returns a filtered view of grade records.
func (c *Controller) Grades(q models.GradeQuery, spec models.SortSpec) []models.Grade {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SortGrades(FilterGrades(c.state.Grades, q), spec)
}

// Attendance returns a filtered view of attendance records.
func (c *Controller) Attendance(q models.AttendanceQuery) []models.AttendanceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySlice(FilterAttendance(c.state.Attendance, q))
}

// Assignments returns a filtered view of assignments.
func (c *Controller) Assignments(q models.AssignmentQuery) []models.Assignment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copyAssignments(FilterAssignments(c.state.Assignments, q))
}

// Messages returns the messages for one student, or all messages when the
// student id is empty.
func (c *Controller) Messages(studentID string) []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Message
	for _, m := range c.state.Messages {
		if studentID == "" || m.StudentID == studentID {
			out = append(out, m)
		}
	}
	return out
}

// Conferences returns the conferences for one student, or all of them when
// the student id is empty.
func (c *Controller) Conferences(studentID string) []models.Conference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Conference
	for _, conf := range c.state.Conferences {
		if studentID == "" || conf.StudentID == studentID {
			out = append(out, conf)
		}
	}
	return out
}

// Products returns a filtered, sorted view of the catalog.
func (c *Controller) Products(q models.ProductQuery, spec models.SortSpec) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SortProducts(FilterProducts(c.state.Products, q), spec)
}

// Movements returns a filtered, sorted view of the movement log.
func (c *Controller) Movements(q models.MovementQuery, spec models.SortSpec) []models.InventoryMovement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SortMovements(FilterMovements(c.state.Movements, c.state.Products, q), spec)
}

// Appointments returns a filtered, sorted view of the appointment book.
func (c *Controller) Appointments(q models.AppointmentQuery, spec models.SortSpec) []models.Appointment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SortAppointments(FilterAppointments(c.state.Appointments, q), spec)
}

// ServiceHistory returns service records, scoped to a vehicle when one is
// given.
func (c *Controller) ServiceHistory(vehicle string) []models.ServiceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if vehicle == "" {
		return SortServiceRecords(c.state.ServiceRecords, models.SortSpec{Field: "date", Descending: true})
	}
	return VehicleHistory(c.state.ServiceRecords, vehicle)
}

// Aggregate reads. Each call recomputes from current state; nothing is
// cached, so results always agree with the records.

func (c *Controller) GradeDistribution(q models.GradeQuery) []models.BandCount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return GradeDistribution(FilterGrades(c.state.Grades, q))
}

func (c *Controller) AttendanceOverview(q models.AttendanceQuery) models.AttendanceOverview {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AttendanceOverview(FilterAttendance(c.state.Attendance, q))
}

func (c *Controller) AssignmentCompletionOverview() models.CompletionOverview {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AssignmentCompletionOverview(c.state.Assignments)
}

func (c *Controller) AttendanceTrends() []models.TrendPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return AttendanceTrends(c.state.Attendance)
}

func (c *Controller) StudentReport(req models.StudentReportRequest) models.StudentReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return BuildStudentReport(c.state.Students, c.state.Grades, c.state.Attendance, c.state.Assignments, req)
}

func (c *Controller) AttendanceReport(req models.AttendanceReportRequest) models.AttendanceReportData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return BuildAttendanceReport(c.state.Attendance, c.state.Students, req, time.Now())
}

func (c *Controller) MovementSummary() []models.ProductMovementSummary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return MovementSummary(c.state.Products, c.state.Movements)
}

func (c *Controller) InventoryDashboard() models.InventoryDashboard {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return BuildInventoryDashboard(c.state.Products)
}

func (c *Controller) GarageStats() models.GarageStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return BuildGarageStats(c.state.Appointments, c.state.ServiceRecords, time.Now())
}
