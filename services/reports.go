package services

import (
	"encoding/json"
	"fmt"
	"time"

	"trackhub/backend/models"
)

// Saved reports freeze a filter/date-range snapshot together with the data
// computed from it. They are never edited through the aggregation path; a
// rerun replaces the data wholesale.

// CreateSavedReport persists a new saved report.
func (c *Controller) CreateSavedReport(name, reportType, config, data string) (models.SavedReport, error) {
	// Validate the report config JSON
	var configMap map[string]interface{}
	if err := json.Unmarshal([]byte(config), &configMap); err != nil {
		return models.SavedReport{}, fmt.Errorf("invalid report configuration JSON: %w", err)
	}

	now := time.Now()
	report := models.SavedReport{
		ID:         newID(),
		Name:       name,
		ReportType: reportType,
		Config:     config,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SavedReports = append(c.state.SavedReports, report)
	c.save(models.CollectionSavedReports)
	return report, nil
}

// SavedReports returns every saved report.
func (c *Controller) SavedReports() []models.SavedReport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return copySlice(c.state.SavedReports)
}

// GetSavedReport retrieves a saved report by id.
func (c *Controller) GetSavedReport(id string) (models.SavedReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, report := range c.state.SavedReports {
		if report.ID == id {
			return report, nil
		}
	}
	return models.SavedReport{}, ErrNotFound
}

// UpdateSavedReport replaces the name, config and data of a saved report.
func (c *Controller) UpdateSavedReport(id, name, config, data string) (models.SavedReport, error) {
	var configMap map[string]interface{}
	if err := json.Unmarshal([]byte(config), &configMap); err != nil {
		return models.SavedReport{}, fmt.Errorf("invalid report configuration JSON: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, report := range c.state.SavedReports {
		if report.ID == id {
			report.Name = name
			report.Config = config
			report.Data = data
			report.UpdatedAt = time.Now()
			c.state.SavedReports[i] = report
			c.save(models.CollectionSavedReports)
			return report, nil
		}
	}
	return models.SavedReport{}, ErrNotFound
}

// DeleteSavedReport deletes a saved report.
func (c *Controller) DeleteSavedReport(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, report := range c.state.SavedReports {
		if report.ID == id {
			c.state.SavedReports = append(c.state.SavedReports[:i], c.state.SavedReports[i+1:]...)
			c.save(models.CollectionSavedReports)
			return nil
		}
	}
	return ErrNotFound
}

// RerunSavedReport recomputes a student report from a saved report's frozen
// config and stores the fresh data.
func (c *Controller) RerunSavedReport(id string) (models.SavedReport, error) {
	report, err := c.GetSavedReport(id)
	if err != nil {
		return models.SavedReport{}, err
	}

	switch report.ReportType {
	case "student":
		var req models.StudentReportRequest
		if err := json.Unmarshal([]byte(report.Config), &req); err != nil {
			return models.SavedReport{}, fmt.Errorf("invalid saved report config: %w", err)
		}
		data, err := json.Marshal(c.StudentReport(req))
		if err != nil {
			return models.SavedReport{}, fmt.Errorf("failed to encode report data: %w", err)
		}
		return c.UpdateSavedReport(report.ID, report.Name, report.Config, string(data))
	case "attendance":
		var req models.AttendanceReportRequest
		if err := json.Unmarshal([]byte(report.Config), &req); err != nil {
			return models.SavedReport{}, fmt.Errorf("invalid saved report config: %w", err)
		}
		data, err := json.Marshal(c.AttendanceReport(req))
		if err != nil {
			return models.SavedReport{}, fmt.Errorf("failed to encode report data: %w", err)
		}
		return c.UpdateSavedReport(report.ID, report.Name, report.Config, string(data))
	default:
		return models.SavedReport{}, fmt.Errorf("unknown report type %q", report.ReportType)
	}
}
