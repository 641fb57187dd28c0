package types

import (
	"time"
)

// ScheduleEntry is one work order as it shows on the schedule board.
type ScheduleEntry struct {
	WorkOrderID  string    `json:"work_order_id"`
	ServiceLabel string    `json:"service_label"`
	CustomerID   string    `json:"customer_id"`
	BayID        string    `json:"bay_id,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	IsEmergency  bool      `json:"is_emergency,omitempty"`
}

// TechnicianDay is one technician's row on the board.
type TechnicianDay struct {
	TechnicianID   string           `json:"technician_id"`
	Name           string           `json:"name"`
	Status         string           `json:"status"`
	SkillLevel     string           `json:"skill_level"`
	CommittedHours float64          `json:"committed_hours"`
	RemainingHours float64          `json:"remaining_hours"`
	Orders         []*ScheduleEntry `json:"orders"`
}

// DailySchedule is one shop's board for one calendar day.
type DailySchedule struct {
	ShopID      string           `json:"shop_id"`
	Date        string           `json:"date"`
	Technicians []*TechnicianDay `json:"technicians"`
}
