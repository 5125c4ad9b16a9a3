package models

import "time"

type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Phone       string    `json:"phone,omitempty"`
	GradeLevel  string    `json:"gradeLevel,omitempty"`
	ParentName  string    `json:"parentName,omitempty"`
	ParentPhone string    `json:"parentPhone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Grade struct {
	ID        string  `json:"id"`
	StudentID string  `json:"studentId" validate:"required"`
	Subject   string  `json:"subject" validate:"required"`
	Score     float64 `json:"score"`
	Date      string  `json:"date"` // ISO date string, e.g. 2025-01-15
}

type AttendanceRecord struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId" validate:"required"`
	Date         string `json:"date" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=present absent late excused"`
	Notes        string `json:"notes,omitempty"`
	RecordMethod string `json:"recordMethod,omitempty"`
}

// StudentCompletion is one student's completion entry on an assignment.
type StudentCompletion struct {
	StudentID     string `json:"studentId"`
	Status        string `json:"status"`
	SubmittedDate string `json:"submittedDate,omitempty"`
}

type Assignment struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title" validate:"required"`
	Description        string              `json:"description,omitempty"`
	DueDate            string              `json:"dueDate"`
	StudentCompletions []StudentCompletion `json:"studentCompletions"`
}

type Message struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId" validate:"required"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	Date      string `json:"date"`
	Read      bool   `json:"read"`
}

type Conference struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date"`
	Topic     string `json:"topic"`
	Status    string `json:"status"`
}
