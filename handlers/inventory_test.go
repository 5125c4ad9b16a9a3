package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackhub/backend/models"
)

func addTestProduct(t *testing.T, name, sku string, quantity int) models.Product {
	t.Helper()
	p, err := App.AddProduct(models.Product{Name: name, SKU: sku, Quantity: quantity})
	if err != nil {
		t.Fatalf("Error adding product: %v", err)
	}
	return p
}

func TestRecordMovementHandler(t *testing.T) {
	setupTestApp()
	p := addTestProduct(t, "Hex bolts", "HB-01", 10)

	body, _ := json.Marshal(models.InventoryMovement{ProductID: p.ID, Type: "in", Quantity: 5})
	req := httptest.NewRequest("POST", "/movements", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	RecordMovement(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	products := App.Products(models.ProductQuery{}, models.SortSpec{})
	if products[0].Quantity != 15 {
		t.Errorf("Expected quantity 15 after inbound movement, got %d", products[0].Quantity)
	}
}

func TestRecordMovementInsufficientStock(t *testing.T) {
	setupTestApp()
	p := addTestProduct(t, "Hex bolts", "HB-01", 3)

	body, _ := json.Marshal(models.InventoryMovement{ProductID: p.ID, Type: "out", Quantity: 5})
	req := httptest.NewRequest("POST", "/movements", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	RecordMovement(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, w.Code)
	}
	if got := len(App.Movements(models.MovementQuery{}, models.SortSpec{})); got != 0 {
		t.Errorf("Expected no movements after rejection, got %d", got)
	}
}

func TestRecordMovementUnknownProduct(t *testing.T) {
	setupTestApp()

	body, _ := json.Marshal(models.InventoryMovement{ProductID: "ghost", Type: "in", Quantity: 1})
	req := httptest.NewRequest("POST", "/movements", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	RecordMovement(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status code %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestGetMovementSummary(t *testing.T) {
	setupTestApp()
	p := addTestProduct(t, "Hex bolts", "HB-01", 10)
	if _, err := App.RecordMovement(models.InventoryMovement{ProductID: p.ID, Type: "in", Quantity: 4}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/inventory/summary", nil)
	w := httptest.NewRecorder()

	GetMovementSummary(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var rows []models.ProductMovementSummary
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 summary row, got %d", len(rows))
	}
	if rows[0].NetChange != rows[0].Inflow-rows[0].Outflow {
		t.Errorf("Expected netChange %d, got %d", rows[0].Inflow-rows[0].Outflow, rows[0].NetChange)
	}
}

func TestGetInventoryDashboard(t *testing.T) {
	setupTestApp()
	addTestProduct(t, "Hex bolts", "HB-01", 0)
	addTestProduct(t, "Washers", "WA-02", 50)

	req := httptest.NewRequest("GET", "/inventory/dashboard", nil)
	w := httptest.NewRecorder()

	GetInventoryDashboard(w, req)

	var d models.InventoryDashboard
	if err := json.NewDecoder(w.Body).Decode(&d); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if d.TotalProducts != 2 || d.OutOfStock != 1 || d.TotalUnits != 50 {
		t.Errorf("Unexpected dashboard counts: %+v", d)
	}
}

func TestGetMovementsSortedByDate(t *testing.T) {
	setupTestApp()
	p := addTestProduct(t, "Hex bolts", "HB-01", 100)
	for _, date := range []string{"2025-01-10", "2025-01-05", "2025-01-20"} {
		if _, err := App.RecordMovement(models.InventoryMovement{ProductID: p.ID, Type: "out", Quantity: 1, Date: date}); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest("GET", "/movements?sortBy=date&sortDir=desc", nil)
	w := httptest.NewRecorder()

	GetMovements(w, req)

	var movements []models.InventoryMovement
	if err := json.NewDecoder(w.Body).Decode(&movements); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(movements) != 3 {
		t.Fatalf("Expected 3 movements, got %d", len(movements))
	}
	if movements[0].Date != "2025-01-20" {
		t.Errorf("Expected newest movement first, got %s", movements[0].Date)
	}
}
