package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trackhub/backend/models"
)

func GetStudents(w http.ResponseWriter, r *http.Request) {
	q := models.StudentQuery{
		Search:     r.URL.Query().Get("search"),
		GradeLevel: r.URL.Query().Get("gradeLevel"),
	}
	students := App.Students(q, sortSpecFromQuery(r))
	if students == nil {
		students = []models.Student{}
	}
	respondJSON(w, http.StatusOK, students)
}

func AddStudent(w http.ResponseWriter, r *http.Request) {
	var s models.Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddStudent(s)
	if err != nil {
		Logger.Warn("failed to add student", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var s models.Student
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := App.UpdateStudent(id, s)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := App.DeleteStudent(id); err != nil {
		writeServiceError(w, err)
		return
	}
	Logger.Info("student deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func GetMessages(w http.ResponseWriter, r *http.Request) {
	messages := App.Messages(r.URL.Query().Get("studentId"))
	if messages == nil {
		messages = []models.Message{}
	}
	respondJSON(w, http.StatusOK, messages)
}

func AddMessage(w http.ResponseWriter, r *http.Request) {
	var m models.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddMessage(m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := App.MarkMessageRead(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteMessage(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetConferences(w http.ResponseWriter, r *http.Request) {
	conferences := App.Conferences(r.URL.Query().Get("studentId"))
	if conferences == nil {
		conferences = []models.Conference{}
	}
	respondJSON(w, http.StatusOK, conferences)
}

func AddConference(w http.ResponseWriter, r *http.Request) {
	var conf models.Conference
	if err := json.NewDecoder(r.Body).Decode(&conf); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddConference(conf)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func SetConferenceStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := App.SetConferenceStatus(mux.Vars(r)["id"], body.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func DeleteConference(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteConference(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
