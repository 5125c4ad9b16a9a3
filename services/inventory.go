package services

import (
	"trackhub/backend/models"
)

// MovementSummary produces one row per product in registration order,
// zero-filled, regardless of whether the product has any movements. Inbound
// movements add to inflow and net change, outbound to outflow and against
// net change, transfers touch neither. Movements referencing a product that
// no longer exists are ignored here; they surface through FilterMovements
// with the Unknown Product placeholder instead.
func MovementSummary(products []models.Product, movements []models.InventoryMovement) []models.ProductMovementSummary {
	rows := make([]models.ProductMovementSummary, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		rows[i] = models.ProductMovementSummary{
			ProductID:   p.ID,
			ProductName: p.Name,
			SKU:         p.SKU,
		}
		index[p.ID] = i
	}
	for _, m := range movements {
		i, ok := index[m.ProductID]
		if !ok {
			continue
		}
		switch m.Type {
		case models.MovementIn:
			rows[i].Inflow += m.Quantity
			rows[i].NetChange += m.Quantity
		case models.MovementOut:
			rows[i].Outflow += m.Quantity
			rows[i].NetChange -= m.Quantity
		}
	}
	return rows
}

// BuildInventoryDashboard recomputes the stock predicate counts on every read so
// they always agree with current product state.
func BuildInventoryDashboard(products []models.Product) models.InventoryDashboard {
	var d models.InventoryDashboard
	d.TotalProducts = len(products)
	for _, p := range products {
		if p.Quantity == 0 {
			d.OutOfStock++
		}
		if p.Quantity < models.LowStockThreshold {
			d.LowStockCount++
		}
		d.TotalUnits += p.Quantity
	}
	return d
}
