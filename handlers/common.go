package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trackhub/backend/models"
	"trackhub/backend/services"
)

// App is the application state controller. main wires it before serving;
// tests swap in an in-memory controller.
var App *services.Controller

// Logger is the handler-level logger, replaced by main.
var Logger = zap.NewNop()

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeServiceError translates controller errors into HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrUnknownStudent), errors.Is(err, services.ErrUnknownProduct):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, services.ErrInsufficientStock):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// sortSpecFromQuery reads sortBy/sortDir query parameters.
func sortSpecFromQuery(r *http.Request) models.SortSpec {
	return models.SortSpec{
		Field:      r.URL.Query().Get("sortBy"),
		Descending: r.URL.Query().Get("sortDir") == "desc",
	}
}

// dateRangeFromQuery reads from/to query parameters.
func dateRangeFromQuery(r *http.Request) models.DateRange {
	return models.DateRange{
		Start: r.URL.Query().Get("from"),
		End:   r.URL.Query().Get("to"),
	}
}
