package models

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	SKU         string    `json:"sku" validate:"required"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	Location    string    `json:"location,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type InventoryMovement struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId" validate:"required"`
	Type         string `json:"type" validate:"required,oneof=in out transfer"`
	Quantity     int    `json:"quantity" validate:"gt=0"`
	FromLocation string `json:"fromLocation,omitempty"`
	ToLocation   string `json:"toLocation,omitempty"`
	Reason       string `json:"reason,omitempty"`
	Date         string `json:"date"`
	PerformedBy  string `json:"performedBy,omitempty"`
}

// ProductMovementSummary is one row of the per-product movement report.
type ProductMovementSummary struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Inflow      int    `json:"inflow"`
	Outflow     int    `json:"outflow"`
	NetChange   int    `json:"netChange"`
}

// InventoryDashboard holds the predicate counts recomputed on every read.
type InventoryDashboard struct {
	TotalProducts int `json:"totalProducts"`
	LowStockCount int `json:"lowStockCount"`
	OutOfStock    int `json:"outOfStock"`
	TotalUnits    int `json:"totalUnits"`
}
