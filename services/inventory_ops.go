package services

import (
	"fmt"
	"time"

	"trackhub/backend/models"
)

// AddProduct registers a product in the catalog. Registration order is what
// the movement summary reports in.
func (c *Controller) AddProduct(p models.Product) (models.Product, error) {
	if err := validate.Struct(p); err != nil {
		return models.Product{}, fmt.Errorf("invalid product: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p.ID = newID()
	p.LastUpdated = time.Now()
	c.state.Products = append(c.state.Products, p)
	c.save(models.CollectionProducts)
	return p, nil
}

// UpdateProduct replaces the editable fields of a product.
func (c *Controller) UpdateProduct(id string, p models.Product) (models.Product, error) {
	if err := validate.Struct(p); err != nil {
		return models.Product{}, fmt.Errorf("invalid product: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.state.Products {
		if existing.ID == id {
			p.ID = existing.ID
			p.LastUpdated = time.Now()
			c.state.Products[i] = p
			c.save(models.CollectionProducts)
			return p, nil
		}
	}
	return models.Product{}, ErrNotFound
}

// DeleteProduct removes a product. Its movement history is kept; lookups of
// the product name resolve to the Unknown Product placeholder afterwards.
func (c *Controller) DeleteProduct(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.state.Products {
		if p.ID == id {
			c.state.Products = append(c.state.Products[:i], c.state.Products[i+1:]...)
			c.save(models.CollectionProducts)
			return nil
		}
	}
	return ErrNotFound
}

// RecordMovement appends a movement and applies its side effect to the
// referenced product as one logical unit: inbound adds quantity, outbound
// subtracts it, transfer reassigns the location without touching quantity.
// A movement referencing an unknown product, or an outbound movement that
// would drive the quantity negative, is rejected without any partial write.
func (c *Controller) RecordMovement(m models.InventoryMovement) (models.InventoryMovement, error) {
	if err := validate.Struct(m); err != nil {
		return models.InventoryMovement{}, fmt.Errorf("invalid movement: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, p := range c.state.Products {
		if p.ID == m.ProductID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.InventoryMovement{}, ErrUnknownProduct
	}

	product := c.state.Products[idx]
	switch m.Type {
	case models.MovementIn:
		product.Quantity += m.Quantity
	case models.MovementOut:
		if product.Quantity < m.Quantity {
			return models.InventoryMovement{}, ErrInsufficientStock
		}
		product.Quantity -= m.Quantity
	case models.MovementTransfer:
		if m.FromLocation == "" {
			m.FromLocation = product.Location
		}
		product.Location = m.ToLocation
	}
	product.LastUpdated = time.Now()

	m.ID = newID()
	if m.Date == "" {
		m.Date = time.Now().Format(dayFormat)
	}
	c.state.Products[idx] = product
	c.state.Movements = append(c.state.Movements, m)
	c.save(models.CollectionProducts)
	c.save(models.CollectionMovements)
	return m, nil
}
