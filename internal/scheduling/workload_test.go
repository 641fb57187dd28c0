package scheduling

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"shoptrack/pkg/model"
)

func order(techID string, startHour, endHour int, status string) *model.WorkOrder {
	return &model.WorkOrder{
		TechnicianID: techID,
		StartTime:    testDay.Add(time.Duration(startHour) * time.Hour),
		EndTime:      testDay.Add(time.Duration(endHour) * time.Hour),
		Status:       status,
	}
}

func TestAggregateWorkload(t *testing.T) {
	orders := []*model.WorkOrder{
		order("t1", 8, 10, model.StatusScheduled),
		order("t1", 13, 16, model.StatusInProgress),
		order("t2", 9, 10, model.StatusScheduled),
		order("t2", 11, 13, model.StatusCancelled), // excluded
		order("t3", 9, 11, model.StatusScheduled),  // not on roster, still reported
		order("", 9, 11, model.StatusScheduled),    // unassigned, skipped
	}
	// Off-day order for t1, must not count.
	offDay := order("t1", 9, 10, model.StatusScheduled)
	offDay.StartTime = offDay.StartTime.AddDate(0, 0, 1)
	offDay.EndTime = offDay.EndTime.AddDate(0, 0, 1)
	orders = append(orders, offDay)

	roster := []string{"t1", "t2", "t4"}

	got := AggregateWorkload(orders, testDay, roster)

	want := map[string]Snapshot{
		"t1": {TechnicianID: "t1", Date: testDay, TotalHours: 5, BookingCount: 2},
		"t2": {TechnicianID: "t2", Date: testDay, TotalHours: 1, BookingCount: 1},
		"t3": {TechnicianID: "t3", Date: testDay, TotalHours: 2, BookingCount: 1},
		"t4": {TechnicianID: "t4", Date: testDay},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("AggregateWorkload() = %+v, want %+v", got, want)
	}
}

func TestAggregateWorkloadIdempotent(t *testing.T) {
	orders := []*model.WorkOrder{
		order("t1", 8, 10, model.StatusScheduled),
		order("t2", 9, 12, model.StatusScheduled),
	}
	roster := []string{"t1", "t2", "t3"}

	first := AggregateWorkload(orders, testDay, roster)
	second := AggregateWorkload(orders, testDay, roster)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs: %+v vs %+v", first, second)
	}
}

func TestAggregateWorkloadEmpty(t *testing.T) {
	got := AggregateWorkload(nil, testDay, []string{"t1"})

	if len(got) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(got))
	}
	if snap := got["t1"]; snap.TotalHours != 0 || snap.BookingCount != 0 {
		t.Errorf("idle technician snapshot = %+v, want zero values", snap)
	}
}

// Totals must equal the independent sum of non-cancelled same-day
// durations, across randomly generated order sets.
func TestAggregateWorkloadSumProperty(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	statuses := []string{
		model.StatusScheduled,
		model.StatusInProgress,
		model.StatusCompleted,
		model.StatusCancelled,
	}

	for trial := 0; trial < 50; trial++ {
		var orders []*model.WorkOrder
		wantHours := make(map[string]float64)
		wantCounts := make(map[string]int)

		for i := 0; i < 1+r.Intn(40); i++ {
			techID := fmt.Sprintf("t%d", r.Intn(5))
			startHour := r.Intn(20)
			length := 1 + r.Intn(4)
			status := statuses[r.Intn(len(statuses))]

			o := order(techID, startHour, startHour+length, status)
			if r.Intn(4) == 0 {
				o.StartTime = o.StartTime.AddDate(0, 0, 1)
				o.EndTime = o.EndTime.AddDate(0, 0, 1)
			}
			orders = append(orders, o)

			if status != model.StatusCancelled && SameDay(o.StartTime, testDay) {
				wantHours[techID] += float64(length)
				wantCounts[techID]++
			}
		}

		got := AggregateWorkload(orders, testDay, nil)

		for techID, hours := range wantHours {
			snap := got[techID]
			if snap.TotalHours != hours {
				t.Fatalf("trial %d: technician %s hours = %v, want %v", trial, techID, snap.TotalHours, hours)
			}
			if snap.BookingCount != wantCounts[techID] {
				t.Fatalf("trial %d: technician %s count = %d, want %d", trial, techID, snap.BookingCount, wantCounts[techID])
			}
		}
		for techID, snap := range got {
			if wantCounts[techID] == 0 && (snap.TotalHours != 0 || snap.BookingCount != 0) {
				t.Fatalf("trial %d: unexpected workload for %s: %+v", trial, techID, snap)
			}
		}
	}
}
