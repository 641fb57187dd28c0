package events

import "time"

// Topics shared by the services.
const (
	TopicWorkOrders    = "work-order-events"
	TopicWorkOrdersDLQ = "dlq-work-order-events"
)

// Event types published to TopicWorkOrders.
const (
	TypeWorkOrderCreated       = "work_order.created"
	TypeWorkOrderAssigned      = "work_order.assigned"
	TypeWorkOrderStatusChanged = "work_order.status_changed"
	TypeWorkOrderCancelled     = "work_order.cancelled"
)

// SchemaVersion is stamped on every published event.
const SchemaVersion = "1"

// WorkOrderCreated is emitted after a work order is persisted.
type WorkOrderCreated struct {
	WorkOrderID  string    `json:"work_order_id"`
	ShopID       string    `json:"shop_id"`
	CustomerID   string    `json:"customer_id"`
	VehicleID    string    `json:"vehicle_id"`
	TechnicianID string    `json:"technician_id,omitempty"`
	ServiceLabel string    `json:"service_label"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Priority     string    `json:"priority"`
	IsEmergency  bool      `json:"is_emergency"`
	CreatedAt    time.Time `json:"created_at"`
}

// WorkOrderAssigned is emitted when a technician is attached to a work order,
// whether by explicit assignment or by the auto-assignment flow.
type WorkOrderAssigned struct {
	WorkOrderID  string    `json:"work_order_id"`
	ShopID       string    `json:"shop_id"`
	TechnicianID string    `json:"technician_id"`
	AssignedAt   time.Time `json:"assigned_at"`
	AutoAssigned bool      `json:"auto_assigned"`
}

// WorkOrderStatusChanged is emitted on every status transition.
type WorkOrderStatusChanged struct {
	WorkOrderID string    `json:"work_order_id"`
	ShopID      string    `json:"shop_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	ChangedAt   time.Time `json:"changed_at"`
}
