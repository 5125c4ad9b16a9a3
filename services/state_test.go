package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trackhub/backend/models"
)

// memStore records collection writes so persistence behavior can be asserted
// without a database.
type memStore struct {
	data  map[string]string
	saves []string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Save(name, data string) error {
	s.data[name] = data
	s.saves = append(s.saves, name)
	return nil
}

func (s *memStore) Load(name string) (string, bool, error) {
	data, ok := s.data[name]
	return data, ok, nil
}

func seedStudent(t *testing.T, c *Controller, name string) models.Student {
	t.Helper()
	s, err := c.AddStudent(models.Student{Name: name})
	require.NoError(t, err)
	return s
}

func TestAddStudent_ValidationAndDefaults(t *testing.T) {
	c := NewController(nil, nil)

	_, err := c.AddStudent(models.Student{})
	require.Error(t, err, "name is required")

	_, err = c.AddStudent(models.Student{Name: "A", Email: "not-an-email"})
	require.Error(t, err)

	s, err := c.AddStudent(models.Student{Name: "Sarah Mitchell", Email: "sarah@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestUpdateStudent_PreservesIDAndCreatedAt(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "Before")

	got, err := c.UpdateStudent(s.ID, models.Student{Name: "After"})
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.CreatedAt, got.CreatedAt)
	assert.Equal(t, "After", got.Name)

	_, err = c.UpdateStudent("ghost", models.Student{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStudent_CascadesExactly(t *testing.T) {
	c := NewController(nil, nil)
	victim := seedStudent(t, c, "Victim")
	keeper := seedStudent(t, c, "Keeper")

	for _, id := range []string{victim.ID, keeper.ID} {
		_, err := c.AddGrade(models.Grade{StudentID: id, Subject: "Math", Score: 80, Date: "2025-01-10"})
		require.NoError(t, err)
		_, err = c.RecordAttendance(models.AttendanceRecord{StudentID: id, Date: "2025-01-10", Status: models.AttendancePresent})
		require.NoError(t, err)
		_, err = c.AddMessage(models.Message{StudentID: id, Subject: "hi"})
		require.NoError(t, err)
		_, err = c.AddConference(models.Conference{StudentID: id, Date: "2025-01-20", Topic: "progress"})
		require.NoError(t, err)
	}
	a, err := c.AddAssignment(models.Assignment{Title: "Essay", DueDate: "2025-01-25"})
	require.NoError(t, err)
	require.Len(t, a.StudentCompletions, 2)

	require.NoError(t, c.DeleteStudent(victim.ID))

	assert.Len(t, c.Students(models.StudentQuery{}, models.SortSpec{}), 1)
	grades := c.Grades(models.GradeQuery{}, models.SortSpec{})
	require.Len(t, grades, 1)
	assert.Equal(t, keeper.ID, grades[0].StudentID)
	attendance := c.Attendance(models.AttendanceQuery{})
	require.Len(t, attendance, 1)
	assert.Equal(t, keeper.ID, attendance[0].StudentID)
	assert.Len(t, c.Messages(keeper.ID), 1)
	assert.Empty(t, c.Messages(victim.ID))
	assert.Len(t, c.Conferences(keeper.ID), 1)
	assert.Empty(t, c.Conferences(victim.ID))

	assignments := c.Assignments(models.AssignmentQuery{})
	require.Len(t, assignments, 1)
	require.Len(t, assignments[0].StudentCompletions, 1)
	assert.Equal(t, keeper.ID, assignments[0].StudentCompletions[0].StudentID)

	assert.ErrorIs(t, c.DeleteStudent(victim.ID), ErrNotFound)
}

func TestRecordAttendance_UpsertsByStudentAndDate(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")

	first, err := c.RecordAttendance(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-10", Status: models.AttendanceAbsent})
	require.NoError(t, err)
	second, err := c.RecordAttendance(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-10", Status: models.AttendancePresent})
	require.NoError(t, err)

	// Same (student, date) pair overwrites in place and keeps the id
	assert.Equal(t, first.ID, second.ID)
	records := c.Attendance(models.AttendanceQuery{})
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendancePresent, records[0].Status)
	assert.Equal(t, models.RecordMethodManual, records[0].RecordMethod)

	// A different date is a new record
	_, err = c.RecordAttendance(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-11", Status: models.AttendancePresent})
	require.NoError(t, err)
	assert.Len(t, c.Attendance(models.AttendanceQuery{}), 2)
}

func TestRecordAttendance_RejectsUnknownStudentAndBadStatus(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")

	_, err := c.RecordAttendance(models.AttendanceRecord{StudentID: "ghost", Date: "2025-01-10", Status: models.AttendancePresent})
	assert.ErrorIs(t, err, ErrUnknownStudent)

	_, err = c.RecordAttendance(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-10", Status: "attending"})
	assert.Error(t, err)
}

func TestAddAssignment_InitializesRoster(t *testing.T) {
	c := NewController(nil, nil)
	s1 := seedStudent(t, c, "A")
	s2 := seedStudent(t, c, "B")

	a, err := c.AddAssignment(models.Assignment{Title: "Essay", DueDate: "2025-01-25"})
	require.NoError(t, err)
	require.Len(t, a.StudentCompletions, 2)
	assert.Equal(t, s1.ID, a.StudentCompletions[0].StudentID)
	assert.Equal(t, s2.ID, a.StudentCompletions[1].StudentID)
	assert.Equal(t, models.CompletionNotStarted, a.StudentCompletions[0].Status)
}

func TestSetCompletionStatus(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")
	a, err := c.AddAssignment(models.Assignment{Title: "Essay"})
	require.NoError(t, err)

	require.NoError(t, c.SetCompletionStatus(a.ID, s.ID, models.CompletionCompleted, "2025-01-22"))
	got := c.Assignments(models.AssignmentQuery{})[0]
	assert.Equal(t, models.CompletionCompleted, got.StudentCompletions[0].Status)
	assert.Equal(t, "2025-01-22", got.StudentCompletions[0].SubmittedDate)

	assert.ErrorIs(t, c.SetCompletionStatus(a.ID, "ghost", models.CompletionCompleted, ""), ErrUnknownStudent)
	assert.ErrorIs(t, c.SetCompletionStatus("ghost", s.ID, models.CompletionCompleted, ""), ErrNotFound)
}

func TestSetCompletionStatus_RejectsUnknownStatus(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")
	a, err := c.AddAssignment(models.Assignment{Title: "Essay"})
	require.NoError(t, err)

	require.Error(t, c.SetCompletionStatus(a.ID, s.ID, "donezo", ""))

	// The stored entry keeps its status and the overview still counts it.
	got := c.Assignments(models.AssignmentQuery{})[0]
	assert.Equal(t, models.CompletionNotStarted, got.StudentCompletions[0].Status)
	o := AssignmentCompletionOverview(c.Assignments(models.AssignmentQuery{}))
	assert.Equal(t, 1, o.Completed+o.InProgress+o.NotStarted)
}

func TestBackfillCompletions_AddsMissingEntriesOnly(t *testing.T) {
	c := NewController(nil, nil)
	s1 := seedStudent(t, c, "A")
	a, err := c.AddAssignment(models.Assignment{Title: "Essay"})
	require.NoError(t, err)
	require.NoError(t, c.SetCompletionStatus(a.ID, s1.ID, models.CompletionCompleted, ""))

	s2 := seedStudent(t, c, "B")
	require.NoError(t, c.BackfillCompletions(a.ID))

	got := c.Assignments(models.AssignmentQuery{})[0]
	require.Len(t, got.StudentCompletions, 2)
	assert.Equal(t, models.CompletionCompleted, got.StudentCompletions[0].Status)
	assert.Equal(t, s2.ID, got.StudentCompletions[1].StudentID)
	assert.Equal(t, models.CompletionNotStarted, got.StudentCompletions[1].Status)
}

func TestCompleteAppointment_CreatesServiceRecord(t *testing.T) {
	c := NewController(nil, nil)
	a, err := c.AddAppointment(models.Appointment{CustomerName: "Pat", Vehicle: "2019 Corolla", ServiceType: "Oil change", Date: "2025-01-20"})
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentScheduled, a.Status)
	assert.Equal(t, models.PriorityMedium, a.Priority)

	rec, err := c.CompleteAppointment(a.ID, 89.50, "", "Sam")
	require.NoError(t, err)
	assert.Equal(t, a.ID, rec.AppointmentID)
	assert.Equal(t, "2019 Corolla", rec.Vehicle)
	assert.Equal(t, "Oil change", rec.Description) // defaults to the service type
	assert.InDelta(t, 89.50, rec.Cost, 1e-9)

	appointments := c.Appointments(models.AppointmentQuery{}, models.SortSpec{})
	require.Len(t, appointments, 1)
	assert.Equal(t, models.AppointmentCompleted, appointments[0].Status)
	assert.Len(t, c.ServiceHistory("2019 Corolla"), 1)
}

func TestControllerPersistsMutationsToStore(t *testing.T) {
	store := newMemStore()
	c := NewController(store, nil)

	s := seedStudent(t, c, "A")
	_, err := c.AddGrade(models.Grade{StudentID: s.ID, Subject: "Math", Score: 70, Date: "2025-01-10"})
	require.NoError(t, err)

	assert.Contains(t, store.data, models.CollectionStudents)
	assert.Contains(t, store.data, models.CollectionGrades)
	assert.Equal(t, []string{models.CollectionStudents, models.CollectionGrades}, store.saves)

	// A fresh controller over the same store sees the saved state
	c2 := NewController(store, nil)
	require.NoError(t, c2.LoadState())
	assert.Len(t, c2.Students(models.StudentQuery{}, models.SortSpec{}), 1)
	assert.Len(t, c2.Grades(models.GradeQuery{}, models.SortSpec{}), 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := NewController(nil, nil)
	seedStudent(t, c, "A")

	snap := c.Snapshot()
	require.Len(t, snap.Students, 1)
	snap.Students[0].Name = "mutated"

	assert.Equal(t, "A", c.Students(models.StudentQuery{}, models.SortSpec{})[0].Name)
}

func TestSnapshotUnaffectedByLaterCompletionUpdate(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")
	a, err := c.AddAssignment(models.Assignment{Title: "Essay"})
	require.NoError(t, err)

	snap := c.Snapshot()
	require.NoError(t, c.SetCompletionStatus(a.ID, s.ID, models.CompletionCompleted, "2025-01-22"))
	require.NoError(t, c.BackfillCompletions(a.ID))

	// The snapshot keeps the completion entries it was taken with.
	require.Len(t, snap.Assignments, 1)
	require.Len(t, snap.Assignments[0].StudentCompletions, 1)
	assert.Equal(t, models.CompletionNotStarted, snap.Assignments[0].StudentCompletions[0].Status)
	assert.Equal(t, "", snap.Assignments[0].StudentCompletions[0].SubmittedDate)
}

func TestReadAccessorsApplyFilterAndSort(t *testing.T) {
	c := NewController(nil, nil)
	s := seedStudent(t, c, "A")
	for _, g := range []struct {
		subject string
		score   float64
		date    string
	}{
		{"Math", 92, "2025-01-10"},
		{"Science", 81, "2025-01-12"},
		{"Math", 70, "2025-01-14"},
	} {
		_, err := c.AddGrade(models.Grade{StudentID: s.ID, Subject: g.subject, Score: g.score, Date: g.date})
		require.NoError(t, err)
	}

	out := c.Grades(models.GradeQuery{Subject: "Math"}, models.SortSpec{Field: "score", Descending: true})
	require.Len(t, out, 2)
	assert.InDelta(t, 92.0, out[0].Score, 1e-9)
	assert.InDelta(t, 70.0, out[1].Score, 1e-9)
}
