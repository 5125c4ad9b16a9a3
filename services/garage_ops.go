package services

import (
	"fmt"

	"trackhub/backend/models"
)

// AddAppointment books an appointment; the status defaults to scheduled and
// the priority to medium.
func (c *Controller) AddAppointment(a models.Appointment) (models.Appointment, error) {
	if a.Status == "" {
		a.Status = models.AppointmentScheduled
	}
	if a.Priority == "" {
		a.Priority = models.PriorityMedium
	}
	if err := validate.Struct(a); err != nil {
		return models.Appointment{}, fmt.Errorf("invalid appointment: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	a.ID = newID()
	c.state.Appointments = append(c.state.Appointments, a)
	c.save(models.CollectionAppointments)
	return a, nil
}

// UpdateAppointment replaces the editable fields of an appointment.
func (c *Controller) UpdateAppointment(id string, a models.Appointment) (models.Appointment, error) {
	if err := validate.Struct(a); err != nil {
		return models.Appointment{}, fmt.Errorf("invalid appointment: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.state.Appointments {
		if existing.ID == id {
			a.ID = existing.ID
			c.state.Appointments[i] = a
			c.save(models.CollectionAppointments)
			return a, nil
		}
	}
	return models.Appointment{}, ErrNotFound
}

// DeleteAppointment removes an appointment from the book.
func (c *Controller) DeleteAppointment(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Appointments {
		if a.ID == id {
			c.state.Appointments = append(c.state.Appointments[:i], c.state.Appointments[i+1:]...)
			c.save(models.CollectionAppointments)
			return nil
		}
	}
	return ErrNotFound
}

// CompleteAppointment marks an appointment completed and writes the matching
// service-history record in the same call.
func (c *Controller) CompleteAppointment(id string, cost float64, description, mechanic string) (models.ServiceRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, a := range c.state.Appointments {
		if a.ID != id {
			continue
		}
		c.state.Appointments[i].Status = models.AppointmentCompleted
		rec := models.ServiceRecord{
			ID:            newID(),
			AppointmentID: a.ID,
			Vehicle:       a.Vehicle,
			Date:          a.Date,
			Description:   description,
			Cost:          cost,
			Mechanic:      mechanic,
		}
		if rec.Description == "" {
			rec.Description = a.ServiceType
		}
		c.state.ServiceRecords = append(c.state.ServiceRecords, rec)
		c.save(models.CollectionAppointments)
		c.save(models.CollectionServiceRecords)
		return rec, nil
	}
	return models.ServiceRecord{}, ErrNotFound
}

// AddServiceRecord stores a standalone service-history entry, used for work
// done without a booked appointment.
func (c *Controller) AddServiceRecord(rec models.ServiceRecord) (models.ServiceRecord, error) {
	if err := validate.Struct(rec); err != nil {
		return models.ServiceRecord{}, fmt.Errorf("invalid service record: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	rec.ID = newID()
	c.state.ServiceRecords = append(c.state.ServiceRecords, rec)
	c.save(models.CollectionServiceRecords)
	return rec, nil
}

// DeleteServiceRecord removes a service-history entry.
func (c *Controller) DeleteServiceRecord(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, rec := range c.state.ServiceRecords {
		if rec.ID == id {
			c.state.ServiceRecords = append(c.state.ServiceRecords[:i], c.state.ServiceRecords[i+1:]...)
			c.save(models.CollectionServiceRecords)
			return nil
		}
	}
	return ErrNotFound
}
