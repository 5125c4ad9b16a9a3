package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"trackhub/backend/models"
)

func GetGrades(w http.ResponseWriter, r *http.Request) {
	q := models.GradeQuery{
		StudentID: r.URL.Query().Get("studentId"),
		Subject:   r.URL.Query().Get("subject"),
		DateRange: dateRangeFromQuery(r),
	}
	grades := App.Grades(q, sortSpecFromQuery(r))
	if grades == nil {
		grades = []models.Grade{}
	}
	respondJSON(w, http.StatusOK, grades)
}

func AddGrade(w http.ResponseWriter, r *http.Request) {
	var g models.Grade
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddGrade(g)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateGrade(w http.ResponseWriter, r *http.Request) {
	var g models.Grade
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := App.UpdateGrade(mux.Vars(r)["id"], g)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteGrade(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteGrade(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetAttendance(w http.ResponseWriter, r *http.Request) {
	q := models.AttendanceQuery{
		StudentID: r.URL.Query().Get("studentId"),
		Status:    r.URL.Query().Get("status"),
		DateRange: dateRangeFromQuery(r),
	}
	records := App.Attendance(q)
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}

// RecordAttendance upserts by (studentId, date); posting the same pair twice
// overwrites the first record.
func RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var rec models.AttendanceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	saved, err := App.RecordAttendance(rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteAttendance(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetAssignments(w http.ResponseWriter, r *http.Request) {
	q := models.AssignmentQuery{
		Search:    r.URL.Query().Get("search"),
		Status:    r.URL.Query().Get("status"),
		DateRange: dateRangeFromQuery(r),
	}
	assignments := App.Assignments(q)
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	respondJSON(w, http.StatusOK, assignments)
}

func AddAssignment(w http.ResponseWriter, r *http.Request) {
	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddAssignment(a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var a models.Assignment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := App.UpdateAssignment(mux.Vars(r)["id"], a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteAssignment(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetCompletionStatus updates one student's entry on an assignment.
func SetCompletionStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var body struct {
		Status        string `json:"status"`
		SubmittedDate string `json:"submittedDate,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := App.SetCompletionStatus(vars["id"], vars["studentId"], body.Status, body.SubmittedDate); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BackfillCompletions extends an assignment to the current roster.
func BackfillCompletions(w http.ResponseWriter, r *http.Request) {
	if err := App.BackfillCompletions(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
