package model

import (
	"time"
)

type WorkOrder struct {
	ID                   string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ShopID               string    `json:"shop_id" bson:"shop_id" validate:"required,mongodb"`
	CustomerID           string    `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	VehicleID            string    `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty" validate:"omitempty,mongodb"`
	BayID                string    `json:"bay_id,omitempty" bson:"bay_id,omitempty" validate:"omitempty,min=1,max=50"`
	TechnicianID         string    `json:"technician_id,omitempty" bson:"technician_id,omitempty" validate:"omitempty,mongodb"`
	ServiceLabel         string    `json:"service_label" bson:"service_label" validate:"required,min=2,max=100"`
	RequiredSpecialties  []string  `json:"required_specialties,omitempty" bson:"required_specialties,omitempty" validate:"omitempty,max=10,dive,min=2,max=50"`
	MinimumSkillLevel    string    `json:"minimum_skill_level,omitempty" bson:"minimum_skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate expert"`
	StartTime            time.Time `json:"start_time" bson:"start_time" validate:"required"`
	EndTime              time.Time `json:"end_time" bson:"end_time" validate:"required,gtfield=StartTime"`
	EstimatedHours       float64   `json:"estimated_hours" bson:"estimated_hours" validate:"omitempty,gt=0,max=24"`
	Status               string    `json:"status" bson:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	Priority             string    `json:"priority" bson:"priority" validate:"required,oneof=low normal high"`
	IsEmergency          bool      `json:"is_emergency" bson:"is_emergency"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type WorkOrderUpdate struct {
	ServiceLabel        string     `json:"service_label,omitempty" validate:"omitempty,min=2,max=100"`
	BayID               *string    `json:"bay_id,omitempty" validate:"omitempty"`
	RequiredSpecialties *[]string  `json:"required_specialties,omitempty" validate:"omitempty,max=10,dive,min=2,max=50"`
	MinimumSkillLevel   string     `json:"minimum_skill_level,omitempty" validate:"omitempty,oneof=beginner intermediate expert"`
	StartTime           *time.Time `json:"start_time,omitempty" validate:"omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty" validate:"omitempty"`
	EstimatedHours      *float64   `json:"estimated_hours,omitempty" validate:"omitempty,gt=0,max=24"`
	Priority            string     `json:"priority,omitempty" validate:"omitempty,oneof=low normal high"`
	IsEmergency         *bool      `json:"is_emergency,omitempty"`
}

// Assignment carries the fields written when a technician is assigned
// to a work order.
type Assignment struct {
	TechnicianID string `json:"technician_id" bson:"technician_id" validate:"required,mongodb"`
	Priority     string `json:"priority,omitempty" bson:"priority,omitempty" validate:"omitempty,oneof=low normal high"`
	IsEmergency  *bool  `json:"is_emergency,omitempty" bson:"is_emergency,omitempty"`
}

// Duration returns the booked length of the order.
func (w *WorkOrder) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}

// Hours returns the booked length of the order in fractional hours.
func (w *WorkOrder) Hours() float64 {
	return w.Duration().Hours()
}

// JobHours is the workload cost of the order: the explicit estimate when
// given, otherwise the booked duration.
func (w *WorkOrder) JobHours() float64 {
	if w.EstimatedHours > 0 {
		return w.EstimatedHours
	}
	return w.Hours()
}
