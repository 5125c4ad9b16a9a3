package services

import (
	"fmt"
	"time"

	"trackhub/backend/models"
)

func (c *Controller) studentExists(id string) bool {
	for _, s := range c.state.Students {
		if s.ID == id {
			return true
		}
	}
	return false
}

// AddStudent registers a new student. Existing assignments do not gain a
// completion entry for the new student unless BackfillCompletions is called.
func (c *Controller) AddStudent(s models.Student) (models.Student, error) {
	if err := validate.Struct(s); err != nil {
		return models.Student{}, fmt.Errorf("invalid student: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s.ID = newID()
	s.CreatedAt = time.Now()
	c.state.Students = append(c.state.Students, s)
	c.save(models.CollectionStudents)
	return s, nil
}

// UpdateStudent replaces the editable fields of a student.
func (c *Controller) UpdateStudent(id string, s models.Student) (models.Student, error) {
	if err := validate.Struct(s); err != nil {
		return models.Student{}, fmt.Errorf("invalid student: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.state.Students {
		if existing.ID == id {
			s.ID = existing.ID
			s.CreatedAt = existing.CreatedAt
			c.state.Students[i] = s
			c.save(models.CollectionStudents)
			return s, nil
		}
	}
	return models.Student{}, ErrNotFound
}

// DeleteStudent removes a student and cascades to exactly the grade,
// attendance, assignment-completion, message and conference records
// referencing that student id.
func (c *Controller) DeleteStudent(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	kept := c.state.Students[:0:0]
	for _, s := range c.state.Students {
		if s.ID == id {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	c.state.Students = kept

	grades := c.state.Grades[:0:0]
	for _, g := range c.state.Grades {
		if g.StudentID != id {
			grades = append(grades, g)
		}
	}
	c.state.Grades = grades

	attendance := c.state.Attendance[:0:0]
	for _, rec := range c.state.Attendance {
		if rec.StudentID != id {
			attendance = append(attendance, rec)
		}
	}
	c.state.Attendance = attendance

	for i, a := range c.state.Assignments {
		completions := a.StudentCompletions[:0:0]
		for _, comp := range a.StudentCompletions {
			if comp.StudentID != id {
				completions = append(completions, comp)
			}
		}
		c.state.Assignments[i].StudentCompletions = completions
	}

	messages := c.state.Messages[:0:0]
	for _, m := range c.state.Messages {
		if m.StudentID != id {
			messages = append(messages, m)
		}
	}
	c.state.Messages = messages

	conferences := c.state.Conferences[:0:0]
	for _, conf := range c.state.Conferences {
		if conf.StudentID != id {
			conferences = append(conferences, conf)
		}
	}
	c.state.Conferences = conferences

	c.save(models.CollectionStudents)
	c.save(models.CollectionGrades)
	c.save(models.CollectionAttendance)
	c.save(models.CollectionAssignments)
	c.save(models.CollectionMessages)
	c.save(models.CollectionConferences)
	return nil
}

// AddGrade records a grade for a known student.
func (c *Controller) AddGrade(g models.Grade) (models.Grade, error) {
	if err := validate.Struct(g); err != nil {
		return models.Grade{}, fmt.Errorf("invalid grade: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.studentExists(g.StudentID) {
		return models.Grade{}, ErrUnknownStudent
	}
	g.ID = newID()
	c.state.Grades = append(c.state.Grades, g)
	c.save(models.CollectionGrades)
	return g, nil
}

// UpdateGrade replaces an existing grade record.
func (c *Controller) UpdateGrade(id string, g models.Grade) (models.Grade, error) {
	if err := validate.Struct(g); err != nil {
		return models.Grade{}, fmt.Errorf("invalid grade: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.state.Grades {
		if existing.ID == id {
			g.ID = existing.ID
			c.state.Grades[i] = g
			c.save(models.CollectionGrades)
			return g, nil
		}
	}
	return models.Grade{}, ErrNotFound
}

// DeleteGrade removes a grade record.
func (c *Controller) DeleteGrade(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, g := range c.state.Grades {
		if g.ID == id {
			c.state.Grades = append(c.state.Grades[:i], c.state.Grades[i+1:]...)
			c.save(models.CollectionGrades)
			return nil
		}
	}
	return ErrNotFound
}

// RecordAttendance upserts an attendance record keyed by (studentId, date).
// A write with a colliding pair overwrites the existing record in place,
// keeping its id, so the collection never holds two records for the same
// student and day.
func (c *Controller) RecordAttendance(rec models.AttendanceRecord) (models.AttendanceRecord, error) {
	if rec.RecordMethod == "" {
		rec.RecordMethod = models.RecordMethodManual
	}
	if err := validate.Struct(rec); err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("invalid attendance record: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.studentExists(rec.StudentID) {
		return models.AttendanceRecord{}, ErrUnknownStudent
	}
	for i, existing := range c.state.Attendance {
		if existing.StudentID == rec.StudentID && existing.Date == rec.Date {
			rec.ID = existing.ID
			c.state.Attendance[i] = rec
			c.save(models.CollectionAttendance)
			return rec, nil
		}
	}
	rec.ID = newID()
	c.state.Attendance = append(c.state.Attendance, rec)
	c.save(models.CollectionAttendance)
	return rec, nil
}

// DeleteAttendance removes an attendance record by id.
func (c *Controller) DeleteAttendance(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, rec := range c.state.Attendance {
		if rec.ID == id {
			c.state.Attendance = append(c.state.Attendance[:i], c.state.Attendance[i+1:]...)
			c.save(models.CollectionAttendance)
			return nil
		}
	}
	return ErrNotFound
}

// AddAssignment creates an assignment with one not-started completion entry
// per currently-known student.
func (c *Controller) AddAssignment(a models.Assignment) (models.Assignment, error) {
	if err := validate.Struct(a); err != nil {
		return models.Assignment{}, fmt.Errorf("invalid assignment: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	a.ID = newID()
	a.StudentCompletions = make([]models.StudentCompletion, 0, len(c.state.Students))
	for _, s := range c.state.Students {
		a.StudentCompletions = append(a.StudentCompletions, models.StudentCompletion{
			StudentID: s.ID,
			Status:    models.CompletionNotStarted,
		})
	}
	c.state.Assignments = append(c.state.Assignments, a)
	c.save(models.CollectionAssignments)
	return a, nil
}

// UpdateAssignment replaces the descriptive fields of an assignment; the
// completion entries are kept as they are.
func (c *Controller) UpdateAssignment(id string, a models.Assignment) (models.Assignment, error) {
	if err := validate.Struct(a); err != nil {
		return models.Assignment{}, fmt.Errorf("invalid assignment: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.state.Assignments {
		if existing.ID == id {
			a.ID = existing.ID
			a.StudentCompletions = existing.StudentCompletions
			c.state.Assignments[i] = a
			c.save(models.CollectionAssignments)
			return a, nil
		}
	}
	return models.Assignment{}, ErrNotFound
}

// DeleteAssignment removes an assignment and its completion entries.
func (c *Controller) DeleteAssignment(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Assignments {
		if a.ID == id {
			c.state.Assignments = append(c.state.Assignments[:i], c.state.Assignments[i+1:]...)
			c.save(models.CollectionAssignments)
			return nil
		}
	}
	return ErrNotFound
}

// SetCompletionStatus updates one student's completion entry on an
// assignment. Students without an entry are not added here; use
// BackfillCompletions to extend an assignment to the current roster.
func (c *Controller) SetCompletionStatus(assignmentID, studentID, status, submittedDate string) error {
	if !statusAllowed(status, completionStatuses) {
		return fmt.Errorf("invalid completion status %q", status)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Assignments {
		if a.ID != assignmentID {
			continue
		}
		for j, comp := range a.StudentCompletions {
			if comp.StudentID == studentID {
				// Rebuild the slice instead of writing in place; snapshots
				// taken before this call may still be serializing it.
				comps := copySlice(a.StudentCompletions)
				comps[j].Status = status
				comps[j].SubmittedDate = submittedDate
				c.state.Assignments[i].StudentCompletions = comps
				c.save(models.CollectionAssignments)
				return nil
			}
		}
		return ErrUnknownStudent
	}
	return ErrNotFound
}

// BackfillCompletions adds a not-started entry for every current student an
// assignment is missing one for.
func (c *Controller) BackfillCompletions(assignmentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Assignments {
		if a.ID != assignmentID {
			continue
		}
		known := make(map[string]bool, len(a.StudentCompletions))
		for _, comp := range a.StudentCompletions {
			known[comp.StudentID] = true
		}
		comps := copySlice(a.StudentCompletions)
		for _, s := range c.state.Students {
			if !known[s.ID] {
				comps = append(comps, models.StudentCompletion{StudentID: s.ID, Status: models.CompletionNotStarted})
			}
		}
		c.state.Assignments[i].StudentCompletions = comps
		c.save(models.CollectionAssignments)
		return nil
	}
	return ErrNotFound
}

// AddMessage stores a message for a known student.
func (c *Controller) AddMessage(m models.Message) (models.Message, error) {
	if err := validate.Struct(m); err != nil {
		return models.Message{}, fmt.Errorf("invalid message: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.studentExists(m.StudentID) {
		return models.Message{}, ErrUnknownStudent
	}
	m.ID = newID()
	c.state.Messages = append(c.state.Messages, m)
	c.save(models.CollectionMessages)
	return m, nil
}

// MarkMessageRead flags a message as read.
func (c *Controller) MarkMessageRead(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.state.Messages {
		if m.ID == id {
			c.state.Messages[i].Read = true
			c.save(models.CollectionMessages)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteMessage removes a message.
func (c *Controller) DeleteMessage(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, m := range c.state.Messages {
		if m.ID == id {
			c.state.Messages = append(c.state.Messages[:i], c.state.Messages[i+1:]...)
			c.save(models.CollectionMessages)
			return nil
		}
	}
	return ErrNotFound
}

// AddConference schedules a conference for a known student.
func (c *Controller) AddConference(conf models.Conference) (models.Conference, error) {
	if conf.Status == "" {
		conf.Status = models.ConferenceScheduled
	}
	if err := validate.Struct(conf); err != nil {
		return models.Conference{}, fmt.Errorf("invalid conference: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.studentExists(conf.StudentID) {
		return models.Conference{}, ErrUnknownStudent
	}
	conf.ID = newID()
	c.state.Conferences = append(c.state.Conferences, conf)
	c.save(models.CollectionConferences)
	return conf, nil
}

// SetConferenceStatus updates the status of a conference.
func (c *Controller) SetConferenceStatus(id, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, conf := range c.state.Conferences {
		if conf.ID == id {
			c.state.Conferences[i].Status = status
			c.save(models.CollectionConferences)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteConference removes a conference.
func (c *Controller) DeleteConference(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, conf := range c.state.Conferences {
		if conf.ID == id {
			c.state.Conferences = append(c.state.Conferences[:i], c.state.Conferences[i+1:]...)
			c.save(models.CollectionConferences)
			return nil
		}
	}
	return ErrNotFound
}
