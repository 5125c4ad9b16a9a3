package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"trackhub/backend/models"
)

func GetAppointments(w http.ResponseWriter, r *http.Request) {
	q := models.AppointmentQuery{
		Search:    r.URL.Query().Get("search"),
		Status:    r.URL.Query().Get("status"),
		Priority:  r.URL.Query().Get("priority"),
		DateRange: dateRangeFromQuery(r),
	}
	appointments := App.Appointments(q, sortSpecFromQuery(r))
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	respondJSON(w, http.StatusOK, appointments)
}

func AddAppointment(w http.ResponseWriter, r *http.Request) {
	var a models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddAppointment(a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var a models.Appointment
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := App.UpdateAppointment(mux.Vars(r)["id"], a)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteAppointment(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteAppointment closes an appointment and writes its service-history
// record in one step.
func CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Cost        float64 `json:"cost"`
		Description string  `json:"description,omitempty"`
		Mechanic    string  `json:"mechanic,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := App.CompleteAppointment(mux.Vars(r)["id"], body.Cost, body.Description, body.Mechanic)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func GetServiceHistory(w http.ResponseWriter, r *http.Request) {
	history := App.ServiceHistory(r.URL.Query().Get("vehicle"))
	if history == nil {
		history = []models.ServiceRecord{}
	}
	respondJSON(w, http.StatusOK, history)
}

func AddServiceRecord(w http.ResponseWriter, r *http.Request) {
	var rec models.ServiceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddServiceRecord(rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func DeleteServiceRecord(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteServiceRecord(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetGarageStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, App.GarageStats())
}
