package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trackhub/backend/services"
)

// ExportCollection streams one collection as CSV or JSON (format query
// parameter, default json).
func ExportCollection(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	format := r.URL.Query().Get("format")

	data, err := services.ExportCollection(App.Snapshot(), collection, format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if format == services.FormatCSV {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", collection))
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", collection))
	}
	if _, err := w.Write(data); err != nil {
		Logger.Error("failed to write export", zap.Error(err))
	}
}

// ImportCollection ingests a CSV or JSON payload into one collection and
// reports per-row results. Bad rows are counted and skipped, never fatal.
func ImportCollection(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]
	format := r.URL.Query().Get("format")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := App.ImportCollection(collection, format, body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
