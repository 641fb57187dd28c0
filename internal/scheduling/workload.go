package scheduling

import (
	"time"

	"shoptrack/pkg/model"
)

// Snapshot is a derived projection of one technician's committed day.
// It is never stored; recompute it from the order set when needed.
type Snapshot struct {
	TechnicianID string
	Date         time.Time
	TotalHours   float64
	BookingCount int
}

// AggregateWorkload computes per-technician committed hours and order
// counts for one calendar day. Cancelled orders and orders without an
// assigned technician are skipped. Every technician in roster gets a
// snapshot, zero-valued when idle, so the selector sees the full bench.
// Input is not mutated.
func AggregateWorkload(orders []*model.WorkOrder, day time.Time, roster []string) map[string]Snapshot {
	snapshots := make(map[string]Snapshot, len(roster))

	for _, id := range roster {
		snapshots[id] = Snapshot{TechnicianID: id, Date: day}
	}

	for _, order := range orders {
		if order.TechnicianID == "" || order.Status == model.StatusCancelled {
			continue
		}
		if !SameDay(order.StartTime, day) {
			continue
		}

		snap, ok := snapshots[order.TechnicianID]
		if !ok {
			snap = Snapshot{TechnicianID: order.TechnicianID, Date: day}
		}
		snap.TotalHours += order.Hours()
		snap.BookingCount++
		snapshots[order.TechnicianID] = snap
	}

	return snapshots
}
