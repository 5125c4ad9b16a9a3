package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackhub/backend/models"
)

func TestExportImport_CSVRoundTrip(t *testing.T) {
	src := NewController(nil, nil)
	s := seedStudent(t, src, "Sarah Mitchell")
	g, err := src.AddGrade(models.Grade{StudentID: s.ID, Subject: "Math", Score: 86.5, Date: "2025-01-10"})
	require.NoError(t, err)

	students, err := ExportCollection(src.Snapshot(), models.CollectionStudents, FormatCSV)
	require.NoError(t, err)
	grades, err := ExportCollection(src.Snapshot(), models.CollectionGrades, FormatCSV)
	require.NoError(t, err)

	// Parents import before children so foreign keys resolve
	dst := NewController(nil, nil)
	res, err := dst.ImportCollection(models.CollectionStudents, FormatCSV, students)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Zero(t, res.Skipped)
	res, err = dst.ImportCollection(models.CollectionGrades, FormatCSV, grades)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	gotStudents := dst.Students(models.StudentQuery{}, models.SortSpec{})
	require.Len(t, gotStudents, 1)
	assert.Equal(t, s.ID, gotStudents[0].ID)
	assert.Equal(t, "Sarah Mitchell", gotStudents[0].Name)

	gotGrades := dst.Grades(models.GradeQuery{}, models.SortSpec{})
	require.Len(t, gotGrades, 1)
	assert.Equal(t, g.ID, gotGrades[0].ID)
	assert.InDelta(t, 86.5, gotGrades[0].Score, 1e-9)
	assert.Equal(t, "2025-01-10", gotGrades[0].Date)
}

func TestExportImport_JSONRoundTripWithCompletions(t *testing.T) {
	src := NewController(nil, nil)
	s := seedStudent(t, src, "A")
	a, err := src.AddAssignment(models.Assignment{Title: "Essay", DueDate: "2025-01-25"})
	require.NoError(t, err)
	require.NoError(t, src.SetCompletionStatus(a.ID, s.ID, models.CompletionInProgress, ""))

	students, err := ExportCollection(src.Snapshot(), models.CollectionStudents, FormatJSON)
	require.NoError(t, err)
	assignments, err := ExportCollection(src.Snapshot(), models.CollectionAssignments, FormatJSON)
	require.NoError(t, err)

	dst := NewController(nil, nil)
	_, err = dst.ImportCollection(models.CollectionStudents, FormatJSON, students)
	require.NoError(t, err)
	res, err := dst.ImportCollection(models.CollectionAssignments, FormatJSON, assignments)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	got := dst.Assignments(models.AssignmentQuery{})
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
	require.Len(t, got[0].StudentCompletions, 1)
	assert.Equal(t, models.CompletionInProgress, got[0].StudentCompletions[0].Status)
}

func TestImport_ReimportIsIdempotent(t *testing.T) {
	c := NewController(nil, nil)
	seedStudent(t, c, "A")
	payload, err := ExportCollection(c.Snapshot(), models.CollectionStudents, FormatJSON)
	require.NoError(t, err)

	_, err = c.ImportCollection(models.CollectionStudents, FormatJSON, payload)
	require.NoError(t, err)
	assert.Len(t, c.Students(models.StudentQuery{}, models.SortSpec{}), 1)
}

func TestImport_SkipsRowsWithBrokenForeignKeys(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")

	payload := []byte(`[
		{"studentId": "` + s.ID + `", "subject": "Math", "score": 90, "date": "2025-01-10"},
		{"studentId": "ghost", "subject": "Math", "score": 70, "date": "2025-01-11"}
	]`)

	res, err := c.ImportCollection(models.CollectionGrades, FormatJSON, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "row 2")
	assert.Len(t, c.Grades(models.GradeQuery{}, models.SortSpec{}), 1)
}

func TestImport_CoercesMissingAndInvalidValues(t *testing.T) {
	c := NewController(nil, nil)
	payload := []byte(`[{"email": "", "phone": "555-0100"}]`)

	res, err := c.ImportCollection(models.CollectionStudents, FormatJSON, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	got := c.Students(models.StudentQuery{}, models.SortSpec{})
	require.Len(t, got, 1)
	assert.Equal(t, models.UnknownName, got[0].Name)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestImport_CoercesUnknownStatuses(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")

	payload := []byte(`[{"studentId": "` + s.ID + `", "date": "2025-01-10", "status": "attending"}]`)
	res, err := c.ImportCollection(models.CollectionAttendance, FormatJSON, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	got := c.Attendance(models.AttendanceQuery{})
	require.Len(t, got, 1)
	assert.Equal(t, models.AttendancePresent, got[0].Status)
	assert.Equal(t, models.RecordMethodManual, got[0].RecordMethod)
}

func TestImport_AttendanceHonorsUpsertKey(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")
	first, err := c.RecordAttendance(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-10", Status: models.AttendanceAbsent})
	require.NoError(t, err)

	payload := []byte(`[{"studentId": "` + s.ID + `", "date": "2025-01-10", "status": "present"}]`)
	_, err = c.ImportCollection(models.CollectionAttendance, FormatJSON, payload)
	require.NoError(t, err)

	got := c.Attendance(models.AttendanceQuery{})
	require.Len(t, got, 1)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, models.AttendancePresent, got[0].Status)
}

func TestImport_MovementsAreHistoryNotReplay(t *testing.T) {
	c := NewController(nil, nil)
	p, err := c.AddProduct(models.Product{Name: "Bolts", SKU: "HB-01", Quantity: 7})
	require.NoError(t, err)

	payload := []byte(`[{"productId": "` + p.ID + `", "type": "in", "quantity": 100, "date": "2025-01-10"}]`)
	res, err := c.ImportCollection(models.CollectionMovements, FormatJSON, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	// The movement lands in history; the quantity is not replayed
	assert.Len(t, c.Movements(models.MovementQuery{}, models.SortSpec{}), 1)
	assert.Equal(t, 7, c.Products(models.ProductQuery{}, models.SortSpec{})[0].Quantity)
}

func TestImport_RejectsUnknownCollectionAndFormat(t *testing.T) {
	c := NewController(nil, nil)

	_, err := c.ImportCollection(models.CollectionStudents, "xml", []byte("<no/>"))
	assert.Error(t, err)

	res, err := c.ImportCollection("widgets", FormatJSON, []byte(`[{"a":1}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	assert.Zero(t, res.Imported)
}

func TestExport_RejectsUnknownCollectionAndFormat(t *testing.T) {
	c := NewController(nil, nil)

	_, err := ExportCollection(c.Snapshot(), "widgets", FormatJSON)
	assert.Error(t, err)
	_, err = ExportCollection(c.Snapshot(), models.CollectionStudents, "xml")
	assert.Error(t, err)
}
