package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"trackhub/backend/models"
	"trackhub/backend/services"
)

func setupTestApp() {
	// In-memory controller, no database behind it
	App = services.NewController(nil, nil)
}

func addTestStudent(t *testing.T, name string) models.Student {
	t.Helper()
	s, err := App.AddStudent(models.Student{Name: name})
	if err != nil {
		t.Fatalf("Error adding student: %v", err)
	}
	return s
}

func TestAddStudent(t *testing.T) {
	setupTestApp()

	// Setup
	reqBody := models.Student{
		Name:  "Sarah Mitchell",
		Email: "sarah@example.com",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/students", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Execute
	AddStudent(w, req)

	// Check response
	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var response models.Student
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if response.ID == "" {
		t.Error("Expected created student to have an id")
	}
	if response.Name != "Sarah Mitchell" {
		t.Errorf("Expected name 'Sarah Mitchell', got '%s'", response.Name)
	}
}

func TestAddStudentValidation(t *testing.T) {
	setupTestApp()

	jsonBody, _ := json.Marshal(models.Student{Email: "no-name@example.com"})
	req := httptest.NewRequest("POST", "/students", bytes.NewBuffer(jsonBody))
	w := httptest.NewRecorder()

	AddStudent(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetStudents(t *testing.T) {
	setupTestApp()
	addTestStudent(t, "Sarah Mitchell")
	addTestStudent(t, "Patrick Doyle")

	req := httptest.NewRequest("GET", "/students?search=sarah", nil)
	w := httptest.NewRecorder()

	GetStudents(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var response []models.Student
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(response) != 1 {
		t.Fatalf("Expected 1 student, got %d", len(response))
	}
	if response[0].Name != "Sarah Mitchell" {
		t.Errorf("Expected 'Sarah Mitchell', got '%s'", response[0].Name)
	}
}

func TestGetStudentsEmptyStateReturnsEmptyArray(t *testing.T) {
	setupTestApp()

	req := httptest.NewRequest("GET", "/students", nil)
	w := httptest.NewRecorder()

	GetStudents(w, req)

	if body := bytes.TrimSpace(w.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected empty JSON array, got %s", body)
	}
}

func TestDeleteStudent(t *testing.T) {
	setupTestApp()
	s := addTestStudent(t, "Sarah Mitchell")
	if _, err := App.AddGrade(models.Grade{StudentID: s.ID, Subject: "Math", Score: 90, Date: "2025-01-10"}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("DELETE", "/students/"+s.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": s.ID})
	w := httptest.NewRecorder()

	DeleteStudent(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, w.Code)
	}
	if got := len(App.Grades(models.GradeQuery{}, models.SortSpec{})); got != 0 {
		t.Errorf("Expected cascade to remove grades, found %d", got)
	}
}

func TestDeleteStudentNotFound(t *testing.T) {
	setupTestApp()

	req := httptest.NewRequest("DELETE", "/students/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "ghost"})
	w := httptest.NewRecorder()

	DeleteStudent(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRecordAttendanceUpsert(t *testing.T) {
	setupTestApp()
	s := addTestStudent(t, "Sarah Mitchell")

	post := func(status string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(models.AttendanceRecord{StudentID: s.ID, Date: "2025-01-10", Status: status})
		req := httptest.NewRequest("POST", "/attendance", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		RecordAttendance(w, req)
		return w
	}

	if w := post("absent"); w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}
	if w := post("present"); w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	records := App.Attendance(models.AttendanceQuery{})
	if len(records) != 1 {
		t.Fatalf("Expected 1 attendance record after upsert, got %d", len(records))
	}
	if records[0].Status != models.AttendancePresent {
		t.Errorf("Expected status 'present', got '%s'", records[0].Status)
	}
}

func TestRecordAttendanceUnknownStudent(t *testing.T) {
	setupTestApp()

	body, _ := json.Marshal(models.AttendanceRecord{StudentID: "ghost", Date: "2025-01-10", Status: "present"})
	req := httptest.NewRequest("POST", "/attendance", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	RecordAttendance(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status code %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestSetCompletionStatus(t *testing.T) {
	setupTestApp()
	s := addTestStudent(t, "Sarah Mitchell")
	a, err := App.AddAssignment(models.Assignment{Title: "Essay"})
	if err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(map[string]string{"status": models.CompletionCompleted, "submittedDate": "2025-01-22"})
	req := httptest.NewRequest("PUT", "/assignments/"+a.ID+"/completions/"+s.ID, bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"id": a.ID, "studentId": s.ID})
	w := httptest.NewRecorder()

	SetCompletionStatus(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, w.Code)
	}
	got := App.Assignments(models.AssignmentQuery{})[0].StudentCompletions[0]
	if got.Status != models.CompletionCompleted {
		t.Errorf("Expected status 'completed', got '%s'", got.Status)
	}
}
