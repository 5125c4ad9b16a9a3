package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"trackhub/backend/models"
)

func GetProducts(w http.ResponseWriter, r *http.Request) {
	q := models.ProductQuery{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
	}
	products := App.Products(q, sortSpecFromQuery(r))
	if products == nil {
		products = []models.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func AddProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := App.AddProduct(p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, created)
}

func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := App.UpdateProduct(mux.Vars(r)["id"], p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := App.DeleteProduct(mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func GetMovements(w http.ResponseWriter, r *http.Request) {
	q := models.MovementQuery{
		Search:    r.URL.Query().Get("search"),
		ProductID: r.URL.Query().Get("productId"),
		Type:      r.URL.Query().Get("type"),
		DateRange: dateRangeFromQuery(r),
	}
	movements := App.Movements(q, sortSpecFromQuery(r))
	if movements == nil {
		movements = []models.InventoryMovement{}
	}
	respondJSON(w, http.StatusOK, movements)
}

// RecordMovement applies a stock movement. A movement referencing an unknown
// product is rejected outright; nothing is partially applied.
func RecordMovement(w http.ResponseWriter, r *http.Request) {
	var m models.InventoryMovement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	recorded, err := App.RecordMovement(m)
	if err != nil {
		Logger.Warn("movement rejected", zap.String("productId", m.ProductID), zap.Error(err))
		writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recorded)
}

func GetMovementSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, App.MovementSummary())
}

func GetInventoryDashboard(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, App.InventoryDashboard())
}
