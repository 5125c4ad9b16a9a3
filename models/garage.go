package models

type Appointment struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName" validate:"required"`
	Vehicle      string `json:"vehicle" validate:"required"`
	ServiceType  string `json:"serviceType,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Priority     string `json:"priority,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type ServiceRecord struct {
	ID            string  `json:"id"`
	AppointmentID string  `json:"appointmentId,omitempty"`
	Vehicle       string  `json:"vehicle" validate:"required"`
	Date          string  `json:"date"`
	Description   string  `json:"description,omitempty"`
	Cost          float64 `json:"cost"`
	Mechanic      string  `json:"mechanic,omitempty"`
}

// GarageStats summarises the appointment book and service history.
type GarageStats struct {
	Scheduled      int             `json:"scheduled"`
	InProgress     int             `json:"inProgress"`
	Completed      int             `json:"completed"`
	Cancelled      int             `json:"cancelled"`
	Upcoming       int             `json:"upcoming"`
	RevenueByMonth []MonthlyAmount `json:"revenueByMonth"`
}

// MonthlyAmount is a calendar-month bucket of summed service cost.
type MonthlyAmount struct {
	Month string  `json:"month"` // formatted 2006-01
	Total float64 `json:"total"`
}
