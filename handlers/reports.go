package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trackhub/backend/models"
)

func GetGradeDistribution(w http.ResponseWriter, r *http.Request) {
	q := models.GradeQuery{
		StudentID: r.URL.Query().Get("studentId"),
		Subject:   r.URL.Query().Get("subject"),
		DateRange: dateRangeFromQuery(r),
	}
	respondJSON(w, http.StatusOK, App.GradeDistribution(q))
}

func GetAttendanceOverview(w http.ResponseWriter, r *http.Request) {
	q := models.AttendanceQuery{
		StudentID: r.URL.Query().Get("studentId"),
		DateRange: dateRangeFromQuery(r),
	}
	respondJSON(w, http.StatusOK, App.AttendanceOverview(q))
}

func GetCompletionOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, App.AssignmentCompletionOverview())
}

func GetAttendanceTrends(w http.ResponseWriter, r *http.Request) {
	trends := App.AttendanceTrends()
	if trends == nil {
		trends = []models.TrendPoint{}
	}
	respondJSON(w, http.StatusOK, trends)
}

// RunStudentReport computes a per-student progress report from the posted
// filter snapshot.
func RunStudentReport(w http.ResponseWriter, r *http.Request) {
	var req models.StudentReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.StudentID == "" {
		http.Error(w, "studentId is required", http.StatusBadRequest)
		return
	}
	Logger.Info("student report requested", zap.String("studentId", req.StudentID))
	respondJSON(w, http.StatusOK, App.StudentReport(req))
}

// RunAttendanceReport computes a daily/weekly/monthly/custom attendance
// report.
func RunAttendanceReport(w http.ResponseWriter, r *http.Request) {
	var req models.AttendanceReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, App.AttendanceReport(req))
}

func GetSavedReports(w http.ResponseWriter, r *http.Request) {
	reports := App.SavedReports()
	if reports == nil {
		reports = []models.SavedReport{}
	}
	respondJSON(w, http.StatusOK, reports)
}

func GetSavedReport(w http.ResponseWriter, r *http.Request) {
	report, err := App.GetSavedReport(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func CreateSavedReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string `json:"name"`
		ReportType string `json:"reportType"`
		Config     string `json:"config"`
		Data       string `json:"data,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	report, err := App.CreateSavedReport(body.Name, body.ReportType, body.Config, body.Data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func UpdateSavedReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name   string `json:"name"`
		Config string `json:"config"`
		Data   string `json:"data,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := App.UpdateSavedReport(mux.Vars(r)["id"], body.Name, body.Config, body.Data)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func DeleteSavedReport(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteSavedReport(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RerunSavedReport recomputes a saved report from its frozen config.
func RerunSavedReport(w http.ResponseWriter, r *http.Request) {
	report, err := App.RerunSavedReport(mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
